package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storygap-backend/internal/http/response"
	"github.com/yungbote/storygap-backend/internal/platform/ctxutil"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

// Recover turns a handler panic into a 500 envelope.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if log != nil {
				log.Error("panic recovered",
					"request_id", ctxutil.RequestID(c.Request.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
			}
			if !c.Writer.Written() {
				response.RespondError(c, http.StatusInternalServerError, "internal", nil)
			}
			c.Abort()
		}()
		c.Next()
	}
}

// LimitBody caps request bodies at n bytes. n <= 0 disables the cap.
func LimitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
