package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, which must already carry the
// receipt_scores schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Skipping Postgres repository test - TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Skip("Database ping failed - connection not available for testing")
	}
	return db
}

func TestScoreRepository_CreateAndFind(t *testing.T) {
	repo := NewScoreRepository(openTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, 28)
	require.NoError(t, err)
	second, err := repo.Create(ctx, 28)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 28, found.Points)
}

func TestScoreRepository_NotFound(t *testing.T) {
	repo := NewScoreRepository(openTestDB(t))

	_, err := repo.FindByID(context.Background(), -1)
	assert.ErrorIs(t, err, ErrNotFound)
}
