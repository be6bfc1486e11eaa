package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajharbinger/receipt-processor/internal/models"
)

// scoreRepository implements ScoreRepository on Postgres
type scoreRepository struct {
	db     dbExecutor
	pinger interface{ PingContext(ctx context.Context) error }
}

// NewScoreRepository creates a Postgres-backed score repository.
// The id column is a BIGSERIAL, so uniqueness comes from the sequence.
func NewScoreRepository(db *sql.DB) ScoreRepository {
	return &scoreRepository{db: db, pinger: db}
}

// Create inserts a new score and returns the stored record
func (r *scoreRepository) Create(ctx context.Context, points int) (*models.ScoreRecord, error) {
	query := `
		INSERT INTO receipt_scores (points)
		VALUES ($1)
		RETURNING id, points, created_at
	`

	var record models.ScoreRecord
	err := r.db.QueryRowContext(ctx, query, points).Scan(&record.ID, &record.Points, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt score: %w", err)
	}

	return &record, nil
}

// FindByID retrieves a score by its identifier
func (r *scoreRepository) FindByID(ctx context.Context, id int64) (*models.ScoreRecord, error) {
	query := `
		SELECT id, points, created_at
		FROM receipt_scores
		WHERE id = $1
	`

	var record models.ScoreRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(&record.ID, &record.Points, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get receipt score %d: %w", id, err)
	}

	return &record, nil
}

// Ping checks the database connection
func (r *scoreRepository) Ping(ctx context.Context) error {
	return r.pinger.PingContext(ctx)
}

// Close is a no-op; the *sql.DB is owned by the database package
func (r *scoreRepository) Close() error {
	return nil
}
