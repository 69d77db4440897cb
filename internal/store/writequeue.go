package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/kvstore"
)

// Queue serializes persistence writes for one collection key: a single
// in-flight write at a time, with the latest pending snapshot coalescing any
// writes enqueued meanwhile. Failures are logged and reported to the optional
// error hook, never returned to mutators.
type Queue struct {
	key     string
	kv      kvstore.Store
	logger  *zap.Logger
	onError func(key string, err error)

	mu         sync.Mutex
	pending    []byte
	hasPending bool
	inFlight   bool
	idle       *sync.Cond
}

// NewQueue builds a write queue bound to one collection key.
func NewQueue(key string, kv kvstore.Store, logger *zap.Logger, onError func(string, error)) *Queue {
	q := &Queue{key: key, kv: kv, logger: logger, onError: onError}
	q.idle = sync.NewCond(&q.mu)
	return q
}

// Enqueue schedules snapshot as the next persisted state of the collection.
func (q *Queue) Enqueue(snapshot []byte) {
	if snapshot == nil {
		return
	}
	q.mu.Lock()
	q.pending = snapshot
	q.hasPending = true
	if q.inFlight {
		q.mu.Unlock()
		return
	}
	q.inFlight = true
	q.mu.Unlock()

	go q.drain()
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if !q.hasPending {
			q.inFlight = false
			q.idle.Broadcast()
			q.mu.Unlock()
			return
		}
		snapshot := q.pending
		q.pending = nil
		q.hasPending = false
		q.mu.Unlock()

		if err := q.kv.Set(context.Background(), q.key, snapshot); err != nil {
			q.logger.Error("persist collection failed",
				zap.String("collection", q.key),
				zap.Error(err))
			if q.onError != nil {
				q.onError(q.key, err)
			}
		}
	}
}

// Wait blocks until no write is pending or in flight.
func (q *Queue) Wait() {
	q.mu.Lock()
	for q.inFlight || q.hasPending {
		q.idle.Wait()
	}
	q.mu.Unlock()
}
