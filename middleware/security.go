package middleware

import (
	"net/http"

	"notesmanager/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter rejects declared oversize bodies up front and caps
// the rest while they are read.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utils.Response{Error: "Request body too large"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
