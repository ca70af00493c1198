package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fixed client-facing messages.
const (
	errEmailRegistered = "Email already registered"
	errPostNotFound    = "Post not found"
	errInternal        = "internal server error"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Detail string `json:"detail" example:"Post not found"`
}

func abortDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, errorResponse{Detail: detail})
}

// badRequest answers 400 with the binding error.
func (h *Handler) badRequest(c *gin.Context, logKey string, err error) {
	h.log.Infow(logKey, "err", err, "request_id", c.GetString(ctxRequestIDKey))
	abortDetail(c, http.StatusBadRequest, err.Error())
}

// internalError logs the cause and hides it from the client.
func (h *Handler) internalError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestIDKey)}, kv...)
	h.log.Errorw(logKey, fields...)
	abortDetail(c, http.StatusInternalServerError, errInternal)
}
