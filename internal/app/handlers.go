package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/http"
	httpH "github.com/yungbote/storygap-backend/internal/http/handlers"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Exercise *httpH.ExerciseHandler
	Grammar  *httpH.GrammarHandler
}

func wireHandlers(log *logger.Logger, services Services, store httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(store, services.IrregularSource),
		Exercise: httpH.NewExerciseHandler(services.Exercise, services.Answers),
		Grammar:  httpH.NewGrammarHandler(services.Grammar),
	}
}

func wireRouter(log *logger.Logger, cfg *config.Config, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
		HealthHandler:   handlers.Health,
		ExerciseHandler: handlers.Exercise,
		GrammarHandler:  handlers.Grammar,
	})
}
