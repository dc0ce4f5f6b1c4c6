package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storygap-backend/internal/platform/ctxutil"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if ri := ctxutil.GetRequestInfo(c.Request.Context()); ri != nil {
			fields = append(fields, "request_id", ri.RequestID)
			if ri.TraceID != "" {
				fields = append(fields, "trace_id", ri.TraceID)
			}
		}
		if cat := c.Param("category"); cat != "" && !strings.HasSuffix(path, "/check") {
			fields = append(fields, "category", cat)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
