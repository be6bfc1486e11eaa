package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/receipt-processor/internal/services"
)

// HealthHandler reports whether the score store is reachable
type HealthHandler struct {
	receiptService services.ReceiptService
	startedAt      time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(receiptService services.ReceiptService) *HealthHandler {
	return &HealthHandler{
		receiptService: receiptService,
		startedAt:      time.Now(),
	}
}

// GetHealth returns 200 when the store answers a ping, 503 otherwise
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	uptime := time.Since(h.startedAt).Round(time.Second).String()
	if err := h.receiptService.Health(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store":  "unreachable",
			"uptime": uptime,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"store":     "ok",
		"uptime":    uptime,
		"timestamp": time.Now().UTC(),
	})
}
