package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/ajharbinger/receipt-processor/internal/models"
)

const (
	scoreKeyPrefix = "receipt:"
	sequenceKey    = "receipt_seq"
)

// buntScoreRepository implements ScoreRepository on an embedded buntdb store
type buntScoreRepository struct {
	db *buntdb.DB
}

// NewBuntDBScoreRepository opens a buntdb store at path (":memory:" for an
// in-process store). Ids come from a counter updated inside buntdb's
// exclusive write transaction.
func NewBuntDBScoreRepository(path string) (ScoreRepository, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb at %s: %w", path, err)
	}
	return &buntScoreRepository{db: db}, nil
}

// Create stores a new score under the next sequence value
func (r *buntScoreRepository) Create(ctx context.Context, points int) (*models.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record models.ScoreRecord
	err := r.db.Update(func(tx *buntdb.Tx) error {
		var last int64
		current, err := tx.Get(sequenceKey)
		switch {
		case err == nil:
			last, err = strconv.ParseInt(current, 10, 64)
			if err != nil {
				return fmt.Errorf("corrupt sequence value %q: %w", current, err)
			}
		case errors.Is(err, buntdb.ErrNotFound):
		default:
			return err
		}

		record = models.ScoreRecord{
			ID:        last + 1,
			Points:    points,
			CreatedAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}

		if _, _, err := tx.Set(sequenceKey, strconv.FormatInt(record.ID, 10), nil); err != nil {
			return err
		}
		_, _, err = tx.Set(scoreKey(record.ID), string(payload), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt score: %w", err)
	}

	return &record, nil
}

// FindByID retrieves a score by its identifier
func (r *buntScoreRepository) FindByID(ctx context.Context, id int64) (*models.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw string
	err := r.db.View(func(tx *buntdb.Tx) error {
		var err error
		raw, err = tx.Get(scoreKey(id))
		return err
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get receipt score %d: %w", id, err)
	}

	var record models.ScoreRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("failed to decode receipt score %d: %w", id, err)
	}
	return &record, nil
}

// Ping verifies the store is open
func (r *buntScoreRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Len()
		return err
	})
}

// Close closes the underlying store
func (r *buntScoreRepository) Close() error {
	return r.db.Close()
}

func scoreKey(id int64) string {
	return scoreKeyPrefix + strconv.FormatInt(id, 10)
}
