package services

import (
	"context"

	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/metrics"
	"github.com/ajharbinger/receipt-processor/internal/models"
	"github.com/ajharbinger/receipt-processor/internal/repository"
	"github.com/ajharbinger/receipt-processor/internal/scoring"
)

// Services contains all application services
type Services struct {
	Receipts ReceiptService
}

// ReceiptService defines the interface for receipt scoring business logic
type ReceiptService interface {
	// ProcessReceipt scores the receipt, stores the score and returns its new id.
	// Identical receipts are never deduplicated.
	ProcessReceipt(ctx context.Context, receipt *models.Receipt) (int64, error)
	// GetPoints returns the stored score for id, or a NOT_FOUND AppError.
	GetPoints(ctx context.Context, id int64) (int, error)
	// Health reports whether the score store is reachable.
	Health(ctx context.Context) error
}

// NewServices creates a new Services instance with all dependencies
func NewServices(repos *repository.Repositories, log logger.Logger, m *metrics.Metrics) *Services {
	return &Services{
		Receipts: NewReceiptService(repos.Scores, scoring.NewEngine(log), log, m),
	}
}
