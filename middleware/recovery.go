package middleware

import (
	"log/slog"
	"runtime/debug"

	"notesmanager/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 with the usual error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("path", c.Request.URL.Path),
					slog.String("request_id", RequestID(c)),
					slog.String("stack", string(debug.Stack())),
				)
				utils.TrackError("http", "panic")
				if !c.Writer.Written() {
					utils.InternalError(c, "Internal server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
