// Package store holds the in-memory collection slices that own all business
// state. Each slice persists its whole collection to the KV adapter on every
// mutation and keeps an append-only status history on stateful records.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
)

// ChangeMeta carries history metadata for an update. It is recorded in the
// status-change entry when the mutation transitions the record's status, and
// is never stored on the record itself.
type ChangeMeta struct {
	Reason string
	Actor  string
}

// Desc describes how a slice reads and writes the generic fields of its
// record type. Status/History accessors are nil for stateless collections.
type Desc[T any] struct {
	Key    string // fixed storage key, e.g. "equipos"
	Prefix string // generated ID prefix, e.g. "EQP"

	ID    func(*T) string
	SetID func(*T, string)

	Status     func(*T) string
	History    func(*T) []domain.StatusChange
	SetHistory func(*T, []domain.StatusChange)

	RegisteredAt    func(*T) time.Time
	SetRegisteredAt func(*T, time.Time)
	Touch           func(*T, time.Time)
}

// Slice owns one business collection: an ordered in-memory sequence
// (most-recent-first) plus fire-and-forget persistence through a write queue.
// The in-memory state is the source of truth for the running process.
type Slice[T any] struct {
	desc   Desc[T]
	logger *zap.Logger
	queue  *Queue
	now    func() time.Time

	mu      sync.RWMutex
	records []T

	onMutate func(key string)
}

// NewSlice builds a slice bound to its storage key. onMutate (optional) is
// invoked after every successful in-memory mutation, outside the lock.
func NewSlice[T any](desc Desc[T], kv kvstore.Store, logger *zap.Logger, opts Options) *Slice[T] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Slice[T]{
		desc:     desc,
		logger:   logger,
		queue:    NewQueue(desc.Key, kv, logger, opts.OnPersistError),
		now:      now,
		onMutate: opts.OnMutate,
	}
}

// Options tunes slice construction; all fields are optional.
type Options struct {
	Now            func() time.Time
	OnMutate       func(key string)
	OnPersistError func(key string, err error)
}

// Key returns the slice's fixed storage key.
func (s *Slice[T]) Key() string { return s.desc.Key }

// Load hydrates the slice from the store. A missing key yields an empty
// collection; a decode failure is a real error, never silently dropped.
func (s *Slice[T]) Load(ctx context.Context, kv kvstore.Store) error {
	data, err := kv.Get(ctx, s.desc.Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", s.desc.Key, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode %s: %w", s.desc.Key, err)
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// Add assigns a generated ID, defaults the registration timestamp to now when
// unset, prepends the record and schedules a persist. Returns the stored
// record.
func (s *Slice[T]) Add(record T) T {
	s.mu.Lock()
	s.desc.SetID(&record, NextID(s.idsLocked(), s.desc.Prefix))
	if s.desc.RegisteredAt != nil && s.desc.RegisteredAt(&record).IsZero() {
		s.desc.SetRegisteredAt(&record, s.now())
	}
	s.records = append([]T{record}, s.records...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	s.mutated()
	return record
}

// Update applies mutate to the record with the given ID. When the mutation
// changes the record's status, a history entry capturing the transition is
// prepended using meta. A missing ID is a no-op; the collection is still
// persisted. Returns the updated record and whether it was found.
func (s *Slice[T]) Update(id string, mutate func(*T), meta ChangeMeta) (T, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	var updated T
	found := idx >= 0
	if found {
		record := s.records[idx]
		var oldStatus string
		if s.desc.Status != nil {
			oldStatus = s.desc.Status(&record)
		}

		mutate(&record)

		if s.desc.Status != nil {
			if newStatus := s.desc.Status(&record); newStatus != oldStatus {
				entry := domain.StatusChange{
					At:     s.now(),
					From:   oldStatus,
					To:     newStatus,
					Reason: meta.Reason,
					Actor:  meta.Actor,
				}
				s.desc.SetHistory(&record, domain.PushStatusChange(s.desc.History(&record), entry))
			}
		}
		if s.desc.Touch != nil {
			s.desc.Touch(&record, s.now())
		}
		s.records[idx] = record
		updated = record
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	if found {
		s.mutated()
	}
	return updated, found
}

// Delete removes the record with the given ID. Missing IDs are a no-op; no
// history entry is written. Returns whether a record was removed.
func (s *Slice[T]) Delete(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	found := idx >= 0
	if found {
		s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	if found {
		s.mutated()
	}
	return found
}

// Get returns the record with the given ID.
func (s *Slice[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.records[idx], true
	}
	var zero T
	return zero, false
}

// List returns a snapshot of the collection, most-recent-first.
func (s *Slice[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Flush blocks until all scheduled writes for this slice have completed.
func (s *Slice[T]) Flush() {
	s.queue.Wait()
}

func (s *Slice[T]) idsLocked() []string {
	ids := make([]string, 0, len(s.records))
	for i := range s.records {
		ids = append(ids, s.desc.ID(&s.records[i]))
	}
	return ids
}

func (s *Slice[T]) indexLocked(id string) int {
	for i := range s.records {
		if s.desc.ID(&s.records[i]) == id {
			return i
		}
	}
	return -1
}

func (s *Slice[T]) snapshotLocked() []byte {
	records := s.records
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Error("encode collection failed",
			zap.String("collection", s.desc.Key),
			zap.Error(err))
		return nil
	}
	return data
}

func (s *Slice[T]) persist(snapshot []byte) {
	if snapshot == nil {
		return
	}
	s.queue.Enqueue(snapshot)
}

func (s *Slice[T]) mutated() {
	if s.onMutate != nil {
		s.onMutate(s.desc.Key)
	}
}
