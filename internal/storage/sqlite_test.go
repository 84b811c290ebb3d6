package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was created")
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	r, err := store.SaveRun(Run{Player: "local", Score: 120, Level: 2})
	require.NoError(t, err)
	assert.NotZero(t, r.ID)
	_, err = uuid.Parse(r.RunID)
	assert.NoError(t, err, "run id is a uuid")

	_, err = store.SaveRun(Run{RunID: r.RunID, Player: "local", Score: 1})
	assert.Error(t, err, "run ids are unique")
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{100, 500, 50, 300, 200} {
		_, err := store.SaveRun(Run{Player: "local", Score: score, Level: i + 1})
		require.NoError(t, err)
	}

	runs, err := store.TopRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, 500, runs[0].Score)
	assert.Equal(t, 2, runs[0].Level)
	assert.Equal(t, 300, runs[1].Score)
	assert.Equal(t, 200, runs[2].Score)
	assert.False(t, runs[0].CreatedAt.IsZero())

	all, err := store.TopRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit falls back to the default")
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTestStore(t)

	for _, p := range []string{"alice", "bob", "alice"} {
		_, err := store.SaveRun(Run{Player: p, Score: 10, Level: 1})
		require.NoError(t, err)
	}

	runs, err := store.PlayerRuns("alice", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID, "newest first")
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	require.NoError(t, err)
	assert.Zero(t, high)

	_, err = store.SaveRun(Run{Player: "local", Score: 300, Level: 1})
	require.NoError(t, err)
	require.NoError(t, store.SaveHighScore("bob", 450))
	require.NoError(t, store.SaveHighScore("bob", 200))

	high, err = store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 450, high, "lower score does not replace a better one")
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(Run{Player: "local", Score: 100, Level: 1})
	require.NoError(t, err)
	require.NoError(t, store.SaveHighScore("local", 100))

	require.NoError(t, store.ClearRuns())

	runs, err := store.TopRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	high, err := store.HighScore()
	require.NoError(t, err)
	assert.Zero(t, high)
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.Runs)
	assert.True(t, stats.LastPlayed.IsZero())

	for _, r := range []Run{{Score: 100, Level: 1}, {Score: 300, Level: 4}} {
		r.Player = "local"
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	stats, err = store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Runs)
	assert.Equal(t, 300, stats.HighScore)
	assert.InDelta(t, 200, stats.AvgScore, 1e-9)
	assert.Equal(t, 4, stats.BestLevel)
	assert.False(t, stats.LastPlayed.IsZero())
}
