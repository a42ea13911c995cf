package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.Load(ctx, KeyHyperConfig)
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Save(ctx, KeyHyperConfig, []byte(`{"a":1}`)))
			got, err = s.Load(ctx, KeyHyperConfig)
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"a":1}`), got)

			require.NoError(t, s.Save(ctx, KeyHyperConfig, []byte(`{"a":2}`)))
			got, err = s.Load(ctx, KeyHyperConfig)
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"a":2}`), got)

			require.NoError(t, s.Delete(ctx, KeyHyperConfig))
			got, err = s.Load(ctx, KeyHyperConfig)
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Delete(ctx, "never-saved"))
		})
	}
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	in := []byte("abc")
	require.NoError(t, s.Save(ctx, "k", in))
	in[0] = 'z'

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
