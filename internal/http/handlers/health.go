package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store           Pinger
	irregularSource string
}

// NewHealthHandler reports store reachability when store is non-nil.
func NewHealthHandler(store Pinger, irregularSource string) *HealthHandler {
	return &HealthHandler{store: store, irregularSource: irregularSource}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	store := "disabled"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		store = "ok"
		if err := h.store.Ping(ctx); err != nil {
			store = "unavailable"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"store":            store,
		"irregular_source": h.irregularSource,
	})
}
