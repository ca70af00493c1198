package handlers

import (
	"context"
	"net/http"
	"time"

	"blog_api/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	healthTimeout = 2 * time.Second
)

// @Summary      Greeting
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

// @Summary      Health check
// @Description  Pings storage through a freshly acquired session.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	err := session.Do(ctx, h.sessions, func(s session.Session) error {
		return s.PingContext(ctx)
	})
	if err != nil {
		h.log.Errorw("health_check_failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": statusUnavailable})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
