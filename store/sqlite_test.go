//go:build sqlite

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "genx.db")

	store, err := New("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() {
		_ = CloseIfSupported(store)
	})

	exercise(t, store)
}

func TestSQLiteStoreReopen(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "genx.db")

	first := NewSQLiteStore(path)
	require.NoError(t, first.Init(ctx))
	assert.NoError(first.SaveImprovement(ctx, testImprovement("r", 4, 1)))
	assert.NoError(first.Close())

	second := NewSQLiteStore(path)
	require.NoError(t, second.Init(ctx))
	defer second.Close()

	imps, err := second.Improvements(ctx, "r")
	assert.NoError(err)
	assert.Len(imps, 1)
}

func TestSQLiteStorePathRequired(t *testing.T) {
	assert.ErrorIs(t, NewSQLiteStore("").Init(context.Background()), ErrPathRequired)
}
