package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/storygap-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storygap-backend/internal/http/middleware"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	ServiceName     string
	CORSOrigins     []string
	MaxRequestBytes int64

	HealthHandler   *httpH.HealthHandler
	ExerciseHandler *httpH.ExerciseHandler
	GrammarHandler  *httpH.GrammarHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "storygap"
	}
	r := gin.New()
	r.Use(httpMW.Recover(cfg.Log))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachRequestInfo())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.LimitBody(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Exercises
		if cfg.ExerciseHandler != nil {
			api.GET("/categories", cfg.ExerciseHandler.ListCategories)
			api.GET("/exercises/:category", cfg.ExerciseHandler.GetExercise)
			api.POST("/exercises/:category/build", cfg.ExerciseHandler.BuildExercise)
			api.POST("/exercises/:category/check", cfg.ExerciseHandler.CheckAnswers)
		}

		// Grammar tools
		if cfg.GrammarHandler != nil {
			api.POST("/gaps/extract", cfg.GrammarHandler.Extract)
			api.POST("/answers/validate", cfg.GrammarHandler.Validate)
		}
	}

	return r
}
