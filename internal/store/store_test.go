package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "k", "v"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(context.Background(), "k", "v"))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, ok, err := s2.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_Overwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "streak", "1"))
	require.NoError(t, s.Set(ctx, "streak", "2"))

	got, ok, err := s.Get(ctx, "streak")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", got)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestUpdate_Commits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(kv KV) error {
		if err := kv.Set(ctx, "a", "1"); err != nil {
			return err
		}
		return kv.Set(ctx, "b", "2")
	})
	require.NoError(t, err)

	got, ok, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", got)
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Update(ctx, func(kv KV) error {
		if err := kv.Set(ctx, "a", "1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "write inside failed update must not persist")
}

func TestUpdate_ReadsOwnWrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(kv KV) error {
		if err := kv.Set(ctx, "k", "v"); err != nil {
			return err
		}
		got, ok, err := kv.Get(ctx, "k")
		if err != nil {
			return err
		}
		if !ok || got != "v" {
			return errors.New("transaction should read its own write")
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestClose_NilSafe(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}
