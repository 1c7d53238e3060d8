package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)
	before := time.Now()

	require.NoError(t, s.Put("prices", []byte(`[{"name":"مودم"}]`)))

	entry, err := s.Get("prices")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"مودم"}]`, string(entry.Body))
	assert.False(t, entry.FetchedAt.Before(before.Add(-time.Second)))

	require.NoError(t, s.Put("prices", []byte(`[]`)))
	entry, err = s.Get("prices")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(entry.Body))
}

func TestStore_Miss(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("hs")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, s.Put("hs", []byte(`[]`)))
	require.NoError(t, s.Delete("hs"))
	_, err = s.Get("hs")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("rules", []byte(`[{"key":"a"}]`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entry, err := s.Get("rules")
	require.NoError(t, err)
	assert.Equal(t, `[{"key":"a"}]`, string(entry.Body))
}
