package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/data/db"
	"github.com/yungbote/storygap-backend/internal/events"
	"github.com/yungbote/storygap-backend/internal/http"
	httpH "github.com/yungbote/storygap-backend/internal/http/handlers"
	"github.com/yungbote/storygap-backend/internal/observability"
	"github.com/yungbote/storygap-backend/internal/platform/envutil"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

const serviceName = "storygap"

type App struct {
	Log      *logger.Logger
	Cfg      *config.Config
	DB       *gorm.DB
	Router   *gin.Engine
	Repos    Repos
	Services Services

	pg           *db.PostgresService
	bus          events.Bus
	server       *http.Server
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx := context.Background()
	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Env,
		Version:     envutil.String("STORYGAP_VERSION", ""),
	})

	a.pg = openStore(log)
	if a.pg != nil {
		a.DB = a.pg.DB()
	}
	a.Repos = wireRepos(a.DB, log)

	bus, err := events.Open(log)
	if err != nil {
		log.Warn("Event bus unavailable; events disabled", "error", err)
		bus = events.NoopBus{}
	}
	a.bus = bus

	a.Services, err = wireServices(ctx, log, cfg, a.Repos, bus)
	if err != nil {
		a.Close()
		return nil, err
	}

	var store httpH.Pinger
	if a.pg != nil {
		store = a.pg
	}
	a.Router = wireRouter(log, cfg, wireHandlers(log, a.Services, store))
	a.server = http.NewServer(cfg.HTTP, log, a.Router)
	return a, nil
}

// openStore connects and migrates postgres unless STORYGAP_STORE is "none".
// Any failure is logged and the app runs without persistence.
func openStore(log *logger.Logger) *db.PostgresService {
	if strings.EqualFold(envutil.String("STORYGAP_STORE", "postgres"), "none") {
		log.Info("Store disabled by STORYGAP_STORE")
		return nil
	}
	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Warn("Postgres init failed; running without a store", "error", err)
		return nil
	}
	if err := db.AutoMigrateAll(pg.DB()); err != nil {
		log.Warn("Postgres auto migration failed; running without a store", "error", err)
		_ = pg.Close()
		return nil
	}
	return pg
}

// Run warms the cache when configured and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return errors.New("app not initialized")
	}
	if a.Cfg.Cache.WarmOnStart {
		go func() {
			start := time.Now()
			if err := a.Services.Exercise.Warm(ctx); err != nil {
				a.Log.Warn("Cache warm-up incomplete", "error", err)
				return
			}
			a.Log.Info("Cache warm-up done", "duration_ms", time.Since(start).Milliseconds())
		}()
	}
	return a.server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.Exercise != nil {
		a.Services.Exercise.Close()
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.Log.Warn("Event bus close failed", "error", err)
		}
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.Log.Warn("Postgres close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
