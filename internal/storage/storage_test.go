package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanerush/internal/game"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndBest(t *testing.T) {
	s := openTestStore(t, "")
	ctx := context.Background()

	for _, d := range []float64{120, 800.5, 45, 800.5, 300} {
		_, err := s.Record(ctx, game.RunStats{Seed: 7, Frames: 100, Distance: d, Elapsed: 2 * time.Second})
		require.NoError(t, err)
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	best, err := s.Best(ctx, 3)
	require.NoError(t, err)
	require.Len(t, best, 3)
	assert.Equal(t, 800.5, best[0].Distance)
	assert.Equal(t, 800.5, best[1].Distance)
	assert.Less(t, best[0].ID, best[1].ID)
	assert.Equal(t, 300.0, best[2].Distance)
	assert.Equal(t, 2*time.Second, best[0].Elapsed())
}

func TestRecordKeepsFullSeed(t *testing.T) {
	s := openTestStore(t, "")
	run, err := s.Record(context.Background(), game.RunStats{Seed: math.MaxUint64})
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", run.Seed)
}

func TestBestEmpty(t *testing.T) {
	s := openTestStore(t, "")
	best, err := s.Best(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, best)
}

func TestFilePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	_, err = s.Record(ctx, game.RunStats{Distance: 42, Passed: 3})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s = openTestStore(t, path)
	best, err := s.Best(ctx, 10)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, 42.0, best[0].Distance)
	assert.Equal(t, 3, best[0].Passed)
}
