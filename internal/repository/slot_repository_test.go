package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T, dsn string) *SlotRepository {
	t.Helper()
	db, err := NewDB(dsn, zap.NewNop())
	require.NoError(t, err)
	repo := NewSlotRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSlotRepositorySaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t, filepath.Join(t.TempDir(), "nested", "tracker.db"))

	_, err := repo.Load(ctx, DataKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, DataKey, []byte(`{"learning":[]}`)))
	require.NoError(t, repo.Save(ctx, DataKey, []byte(`{"learning":[1]}`)))
	require.NoError(t, repo.Save(ctx, "other", []byte("x")))

	got, err := repo.Load(ctx, DataKey)
	require.NoError(t, err)
	assert.Equal(t, `{"learning":[1]}`, string(got))

	var rows int64
	require.NoError(t, repo.db.Table("slot_records").Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestSlotRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "tracker.db")

	first := openTestDB(t, dsn)
	require.NoError(t, first.Save(ctx, DataKey, []byte("saved")))
	require.NoError(t, first.Close())

	second := openTestDB(t, dsn)
	got, err := second.Load(ctx, DataKey)
	require.NoError(t, err)
	assert.Equal(t, "saved", string(got))
}

func TestEnsureDirForSQLite(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, ensureDirForSQLite(":memory:"))
	require.NoError(t, ensureDirForSQLite("file::memory:?cache=shared"))
	require.NoError(t, ensureDirForSQLite("plain.db"))

	dsn := "file:" + filepath.Join(dir, "a", "b", "x.db") + "?_busy_timeout=5000"
	require.NoError(t, ensureDirForSQLite(dsn))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
}

func TestWithPragmas(t *testing.T) {
	tests := map[string]string{
		"plain.db":               "plain.db?_busy_timeout=5000&_journal_mode=WAL",
		"file:x.db?cache=shared": "file:x.db?cache=shared&_busy_timeout=5000&_journal_mode=WAL",
		":memory:":               ":memory:?_busy_timeout=5000",
		"x.db?_busy_timeout=100": "x.db?_busy_timeout=100&_journal_mode=WAL",
		"x.db?_busy_timeout=1&_journal_mode=DELETE": "x.db?_busy_timeout=1&_journal_mode=DELETE",
	}
	for in, want := range tests {
		assert.Equal(t, want, withPragmas(in), in)
	}
}
