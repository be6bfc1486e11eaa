package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryRepo(t *testing.T) ScoreRepository {
	t.Helper()
	repo, err := NewBuntDBScoreRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestBuntDBScoreRepository_CreateAndFind(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, 12)
	require.NoError(t, err)
	second, err := repo.Create(ctx, 32)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 32, found.Points)
	assert.Equal(t, second.ID, found.ID)
}

func TestBuntDBScoreRepository_NotFound(t *testing.T) {
	repo := newMemoryRepo(t)

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuntDBScoreRepository_ConcurrentCreateUniqueIDs(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	const workers = 64
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(points int) {
			defer wg.Done()
			record, err := repo.Create(ctx, points)
			if assert.NoError(t, err) {
				ids <- record.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	for id := int64(1); id <= workers; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestBuntDBScoreRepository_CanceledContext(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuntDBScoreRepository_FileBackedKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	ctx := context.Background()

	repo, err := NewBuntDBScoreRepository(path)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewBuntDBScoreRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	record, err := reopened.Create(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.ID)

	old, err := reopened.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, old.Points)
}

func TestBuntDBScoreRepository_PingAfterClose(t *testing.T) {
	repo, err := NewBuntDBScoreRepository(":memory:")
	require.NoError(t, err)

	assert.NoError(t, repo.Ping(context.Background()))
	require.NoError(t, repo.Close())
	assert.Error(t, repo.Ping(context.Background()))
}
