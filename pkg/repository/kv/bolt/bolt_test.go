package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/kvtest"
)

func TestConformance(t *testing.T) {
	dir := t.TempDir()
	kvtest.Run(t, func(t *testing.T, bucket string) kv.Store {
		// bbolt holds an exclusive lock on the file, use one per store
		path := filepath.Join(dir, bucket+".db")
		s, err := New([]kv.Option{kv.WithBucket(bucket)}, []Option{WithPath(path)})
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "tpc.db")
	ctx := context.Background()

	s, err := New(nil, []Option{WithPath(path)})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "paceSets", []byte("[]")))
	require.NoError(t, s.Close())

	s, err = New(nil, []Option{WithPath(path)})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "paceSets")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}
