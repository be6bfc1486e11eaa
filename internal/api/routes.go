package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/receipt-processor/internal/auth"
	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/metrics"
	"github.com/ajharbinger/receipt-processor/internal/services"
	"github.com/ajharbinger/receipt-processor/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, svcs *services.Services, cfg *config.Config, m *metrics.Metrics, log logger.Logger) {
	receiptHandler := NewReceiptHandler(svcs.Receipts, log)
	healthHandler := NewHealthHandler(svcs.Receipts)

	// Operational routes
	r.GET("/health", healthHandler.GetHealth)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	receipts := r.Group("/receipts")
	if cfg.AuthEnabled() {
		receipts.Use(auth.JWTMiddleware(cfg.JWTSecret))
	}
	{
		receipts.POST("/process", receiptHandler.ProcessReceipt)
		receipts.GET("/:id/points", receiptHandler.GetPoints)
	}
}
