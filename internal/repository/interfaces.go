package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ajharbinger/receipt-processor/internal/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ScoreRepository defines the interface for receipt score storage.
// Implementations must assign unique, never reused identifiers even under
// concurrent Create calls.
type ScoreRepository interface {
	Create(ctx context.Context, points int) (*models.ScoreRecord, error)
	FindByID(ctx context.Context, id int64) (*models.ScoreRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Scores ScoreRepository
}

// dbExecutor is the part of *sql.DB and *sql.Tx the score queries use
type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
