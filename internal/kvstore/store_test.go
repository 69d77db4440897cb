package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackend(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "clientes")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "clientes", []byte(`[{"id":"CLI-001"}]`)))
	require.NoError(t, s.Set(ctx, "tickets", []byte(`[]`)))

	got, err := s.Get(ctx, "clientes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"CLI-001"}]`), got)

	// Overwrite wins.
	require.NoError(t, s.Set(ctx, "clientes", []byte(`[]`)))
	got, err = s.Get(ctx, "clientes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"clientes", "tickets"}, keys)

	require.NoError(t, s.Delete(ctx, "tickets"))
	require.NoError(t, s.Delete(ctx, "tickets"), "deleting a missing key is a no-op")
	_, err = s.Get(ctx, "tickets")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	testBackend(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := []byte(`[1,2,3]`)
	require.NoError(t, s.Set(ctx, "k", original))
	original[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), got)

	got[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), again)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testBackend(t, s)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "equipos", []byte(`[{"id":"EQP-001"}]`)))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "equipos")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"EQP-001"}]`), got)
}
