// Package cloudsync mirrors mutated collections from the primary store to an
// optional remote backend (redis or s3). Sync is best-effort: a failed push
// leaves the collection dirty for the next flush and never affects the
// in-memory state.
package cloudsync

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
)

// Syncer tracks dirty collections and flushes them to the remote after a
// debounce interval, coalescing bursts of mutations into one push.
type Syncer struct {
	primary    kvstore.Store
	remote     kvstore.Store
	logger     *zap.Logger
	dispatcher events.Dispatcher
	debounce   time.Duration

	mu     sync.Mutex
	dirty  map[string]struct{}
	timer  *time.Timer
	closed bool
}

// New builds a syncer. A nil remote disables sync; MarkDirty becomes a no-op.
func New(primary, remote kvstore.Store, logger *zap.Logger, dispatcher events.Dispatcher, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = 5 * time.Second
	}
	return &Syncer{
		primary:    primary,
		remote:     remote,
		logger:     logger,
		dispatcher: dispatcher,
		debounce:   debounce,
		dirty:      make(map[string]struct{}),
	}
}

// Enabled reports whether a remote target is configured.
func (s *Syncer) Enabled() bool {
	return s != nil && s.remote != nil
}

// MarkDirty records that a collection changed and schedules a flush.
func (s *Syncer) MarkDirty(key string) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.dirty[key] = struct{}{}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.Flush(context.Background())
	})
}

// Flush pushes every dirty collection to the remote immediately. Failed keys
// stay dirty. Returns the keys synced and the keys that failed.
func (s *Syncer) Flush(ctx context.Context) (synced, failed []string) {
	if !s.Enabled() {
		return nil, nil
	}

	s.mu.Lock()
	keys := make([]string, 0, len(s.dirty))
	for key := range s.dirty {
		keys = append(keys, key)
	}
	s.dirty = make(map[string]struct{})
	s.mu.Unlock()
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.push(ctx, key); err != nil {
			s.logger.Warn("sync push failed", zap.String("collection", key), zap.Error(err))
			failed = append(failed, key)
			s.mu.Lock()
			if !s.closed {
				s.dirty[key] = struct{}{}
			}
			s.mu.Unlock()
			continue
		}
		synced = append(synced, key)
	}

	if len(synced) > 0 || len(failed) > 0 {
		s.logger.Info("sync completed",
			zap.Strings("synced", synced),
			zap.Strings("failed", failed))
		if s.dispatcher != nil {
			_ = s.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventSyncCompleted,
				Timestamp: time.Now(),
				Payload:   events.SyncCompletedPayload{Collections: synced, Failed: failed},
			})
		}
	}
	return synced, failed
}

// SyncAll marks every key present in the primary store dirty and flushes.
func (s *Syncer) SyncAll(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	keys, err := s.primary.Keys(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for _, key := range keys {
		s.dirty[key] = struct{}{}
	}
	s.mu.Unlock()
	s.Flush(ctx)
	return nil
}

// Close stops the pending flush timer.
func (s *Syncer) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Syncer) push(ctx context.Context, key string) error {
	data, err := s.primary.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remote.Set(ctx, key, data)
}
