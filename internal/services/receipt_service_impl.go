package services

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/ajharbinger/receipt-processor/internal/errors"
	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/metrics"
	"github.com/ajharbinger/receipt-processor/internal/models"
	"github.com/ajharbinger/receipt-processor/internal/repository"
	"github.com/ajharbinger/receipt-processor/internal/scoring"
)

// receiptServiceImpl implements ReceiptService
type receiptServiceImpl struct {
	scores  repository.ScoreRepository
	engine  *scoring.Engine
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewReceiptService creates a receipt service over the given store and engine.
// A nil logger or metrics falls back to no-op implementations.
func NewReceiptService(scores repository.ScoreRepository, engine *scoring.Engine, log logger.Logger, m *metrics.Metrics) ReceiptService {
	if log == nil {
		log = logger.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	if engine == nil {
		engine = scoring.NewEngine(log)
	}
	return &receiptServiceImpl{
		scores:  scores,
		engine:  engine,
		logger:  log,
		metrics: m,
	}
}

// ProcessReceipt scores a receipt and persists the result
func (s *receiptServiceImpl) ProcessReceipt(ctx context.Context, receipt *models.Receipt) (int64, error) {
	if receipt == nil {
		return 0, errors.InvalidInput("receipt is required", nil).WithOperation("ProcessReceipt")
	}

	result := s.engine.Score(receipt)
	for _, detail := range result.Breakdown {
		if detail.Triggered {
			s.metrics.RuleTriggered.WithLabelValues(detail.Rule).Inc()
		}
	}

	record, err := s.scores.Create(ctx, result.Points)
	if err != nil {
		s.metrics.ReceiptsProcessed.WithLabelValues("error").Inc()
		s.logger.Error("Failed to store receipt score", err, "retailer", receipt.Retailer, "points", result.Points)
		return 0, errors.DatabaseError("failed to store receipt score", err).WithOperation("ProcessReceipt")
	}

	s.metrics.ReceiptsProcessed.WithLabelValues("success").Inc()
	s.metrics.ReceiptPoints.Observe(float64(result.Points))
	s.logger.Info("Receipt processed",
		"receipt_id", record.ID,
		"retailer", receipt.Retailer,
		"points", result.Points)

	return record.ID, nil
}

// GetPoints looks up the stored score for a receipt id
func (s *receiptServiceImpl) GetPoints(ctx context.Context, id int64) (int, error) {
	record, err := s.scores.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			s.metrics.Lookups.WithLabelValues(metrics.LookupNotFound).Inc()
			s.logger.Warn("Receipt not found", "receipt_id", id)
			return 0, errors.ReceiptNotFound(strconv.FormatInt(id, 10)).WithOperation("GetPoints")
		}
		s.metrics.Lookups.WithLabelValues(metrics.LookupError).Inc()
		s.logger.Error("Failed to retrieve receipt score", err, "receipt_id", id)
		return 0, errors.DatabaseError("failed to retrieve receipt score", err).WithOperation("GetPoints")
	}

	s.metrics.Lookups.WithLabelValues(metrics.LookupFound).Inc()
	s.logger.Debug("Retrieved receipt points", "receipt_id", id, "points", record.Points)
	return record.Points, nil
}

// Health pings the score store
func (s *receiptServiceImpl) Health(ctx context.Context) error {
	if err := s.scores.Ping(ctx); err != nil {
		return errors.DatabaseError("score store unavailable", err).WithOperation("Health")
	}
	return nil
}
