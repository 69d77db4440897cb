package cloudsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
)

// flakyStore fails Set until healed.
type flakyStore struct {
	*kvstore.MemoryStore
	broken bool
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.broken {
		return errors.New("remote unavailable")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestFlushPushesDirtyCollections(t *testing.T) {
	ctx := context.Background()
	primary := kvstore.NewMemoryStore()
	remote := kvstore.NewMemoryStore()
	require.NoError(t, primary.Set(ctx, "clientes", []byte(`[{"id":"CLI-001"}]`)))

	s := New(primary, remote, zap.NewNop(), nil, time.Hour)
	defer s.Close()

	s.MarkDirty("clientes")
	synced, failed := s.Flush(ctx)

	assert.Equal(t, []string{"clientes"}, synced)
	assert.Empty(t, failed)

	got, err := remote.Get(ctx, "clientes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"CLI-001"}]`), got)
}

func TestFlushIsIdempotentOnCleanState(t *testing.T) {
	s := New(kvstore.NewMemoryStore(), kvstore.NewMemoryStore(), zap.NewNop(), nil, time.Hour)
	defer s.Close()

	synced, failed := s.Flush(context.Background())
	assert.Empty(t, synced)
	assert.Empty(t, failed)
}

func TestFailedKeysStayDirtyAndRetry(t *testing.T) {
	ctx := context.Background()
	primary := kvstore.NewMemoryStore()
	remote := &flakyStore{MemoryStore: kvstore.NewMemoryStore(), broken: true}
	require.NoError(t, primary.Set(ctx, "tickets", []byte(`[]`)))

	s := New(primary, remote, zap.NewNop(), nil, time.Hour)
	defer s.Close()

	s.MarkDirty("tickets")
	synced, failed := s.Flush(ctx)
	assert.Empty(t, synced)
	assert.Equal(t, []string{"tickets"}, failed)

	remote.broken = false
	synced, failed = s.Flush(ctx)
	assert.Equal(t, []string{"tickets"}, synced)
	assert.Empty(t, failed)
}

func TestMissingPrimaryKeyIsNotAnError(t *testing.T) {
	s := New(kvstore.NewMemoryStore(), kvstore.NewMemoryStore(), zap.NewNop(), nil, time.Hour)
	defer s.Close()

	s.MarkDirty("never-written")
	synced, failed := s.Flush(context.Background())
	assert.Equal(t, []string{"never-written"}, synced)
	assert.Empty(t, failed)
}

func TestSyncAllMirrorsEveryCollection(t *testing.T) {
	ctx := context.Background()
	primary := kvstore.NewMemoryStore()
	remote := kvstore.NewMemoryStore()
	require.NoError(t, primary.Set(ctx, "clientes", []byte(`[]`)))
	require.NoError(t, primary.Set(ctx, "equipos", []byte(`[]`)))

	s := New(primary, remote, zap.NewNop(), nil, time.Hour)
	defer s.Close()

	require.NoError(t, s.SyncAll(ctx))
	keys, err := remote.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"clientes", "equipos"}, keys)
}

func TestDisabledSyncerIsNoOp(t *testing.T) {
	s := New(kvstore.NewMemoryStore(), nil, zap.NewNop(), nil, time.Hour)
	defer s.Close()

	assert.False(t, s.Enabled())
	s.MarkDirty("clientes")
	synced, failed := s.Flush(context.Background())
	assert.Empty(t, synced)
	assert.Empty(t, failed)
	assert.NoError(t, s.SyncAll(context.Background()))
}

func TestFlushPublishesCompletionEvent(t *testing.T) {
	ctx := context.Background()
	primary := kvstore.NewMemoryStore()
	require.NoError(t, primary.Set(ctx, "clientes", []byte(`[]`)))

	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	dispatcher.Subscribe(events.EventSyncCompleted, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	s := New(primary, kvstore.NewMemoryStore(), zap.NewNop(), dispatcher, time.Hour)
	defer s.Close()

	s.MarkDirty("clientes")
	s.Flush(ctx)

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(events.SyncCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, []string{"clientes"}, payload.Collections)
}
