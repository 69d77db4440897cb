// Package access maintains the authorized-operator allow-list. It is
// persisted independently of the entity slices under its own fixed key.
package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	"github.com/fieldstack/isp-ops-service/internal/store"
)

// Key is the fixed storage key for the allow-list.
const Key = "usuarios_autorizados"

// List owns the authorized-email set. An empty set means access control is
// disabled when fail-open mode is on (the bootstrap default); with fail-open
// off an empty set denies everyone.
type List struct {
	failOpen   bool
	bcryptCost int
	queue      *store.Queue
	now        func() time.Time

	mu    sync.RWMutex
	users []domain.AuthorizedUser
}

// Config tunes the allow-list behavior.
type Config struct {
	FailOpen   bool
	BcryptCost int
	Now        func() time.Time
}

// NewList builds the allow-list over the KV adapter.
func NewList(kv kvstore.Store, logger *zap.Logger, cfg Config) *List {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &List{
		failOpen:   cfg.FailOpen,
		bcryptCost: cost,
		queue:      store.NewQueue(Key, kv, logger, nil),
		now:        now,
	}
}

// Load hydrates the allow-list from persistence; missing key means empty.
func (l *List) Load(ctx context.Context, kv kvstore.Store) error {
	data, err := kv.Get(ctx, Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", Key, err)
	}
	var users []domain.AuthorizedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("decode %s: %w", Key, err)
	}
	l.mu.Lock()
	l.users = users
	l.mu.Unlock()
	return nil
}

// Normalize lower-cases and trims an email.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add registers an operator email with an optional PIN. Returns false and
// leaves the set unchanged when the normalized email is already present.
func (l *List) Add(email, pin string) (bool, error) {
	normalized := Normalize(email)
	if normalized == "" {
		return false, errors.New("email required")
	}

	var pinHash string
	if pin != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(pin), l.bcryptCost)
		if err != nil {
			return false, err
		}
		pinHash = string(hashed)
	}

	l.mu.Lock()
	if l.indexLocked(normalized) >= 0 {
		l.mu.Unlock()
		return false, nil
	}
	l.users = append(l.users, domain.AuthorizedUser{
		Email:   normalized,
		PINHash: pinHash,
		AddedAt: l.now(),
	})
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.queue.Enqueue(snapshot)
	return true, nil
}

// Remove deletes an operator email; removing an absent email is a no-op.
func (l *List) Remove(email string) {
	normalized := Normalize(email)

	l.mu.Lock()
	if idx := l.indexLocked(normalized); idx >= 0 {
		l.users = append(l.users[:idx:idx], l.users[idx+1:]...)
	}
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.queue.Enqueue(snapshot)
}

// IsAuthorized reports whether the email may operate the system. An empty
// allow-list authorizes everyone only in fail-open mode.
func (l *List) IsAuthorized(email string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.users) == 0 {
		return l.failOpen
	}
	return l.indexLocked(Normalize(email)) >= 0
}

// VerifyPIN checks the operator's PIN. Operators without a stored PIN pass
// with any input.
func (l *List) VerifyPIN(email, pin string) bool {
	l.mu.RLock()
	idx := l.indexLocked(Normalize(email))
	var hash string
	if idx >= 0 {
		hash = l.users[idx].PINHash
	}
	l.mu.RUnlock()

	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// Emails returns the normalized allow-list entries in insertion order.
func (l *List) Emails() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.users))
	for _, user := range l.users {
		out = append(out, user.Email)
	}
	return out
}

// Len returns the number of authorized emails.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.users)
}

// Flush blocks until scheduled writes have completed.
func (l *List) Flush() {
	l.queue.Wait()
}

func (l *List) indexLocked(normalized string) int {
	for i := range l.users {
		if l.users[i].Email == normalized {
			return i
		}
	}
	return -1
}

func (l *List) snapshotLocked() []byte {
	users := l.users
	if users == nil {
		users = []domain.AuthorizedUser{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return nil
	}
	return data
}
