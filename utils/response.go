package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  int         `json:"-"`                 // HTTP status code
	Message string      `json:"message,omitempty"` // Optional message
	Error   string      `json:"error,omitempty"`   // Error message
	Data    interface{} `json:"data,omitempty"`    // Response data
}

func respond(c *gin.Context, status int, r *Response) {
	r.Status = status
	c.JSON(status, r)
}

// Success responses
func Success(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, &Response{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, &Response{Message: message, Data: data})
}

// Error responses
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, &Response{Error: message})
}

func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, &Response{Error: message})
}

func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, &Response{Error: message})
}

func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, &Response{Error: message})
}

func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, &Response{Error: message})
}

func TooManyRequests(c *gin.Context, message string, data ...interface{}) {
	response := &Response{Error: message}
	if len(data) > 0 {
		response.Data = data[0]
	}
	respond(c, http.StatusTooManyRequests, response)
}

// InternalError never carries the underlying error; callers log it.
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, &Response{Error: message})
}

func ServiceUnavailable(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusServiceUnavailable, &Response{Error: message, Data: data})
}
