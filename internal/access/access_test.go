package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldstack/isp-ops-service/internal/kvstore"
)

func newTestList(t *testing.T, kv kvstore.Store, failOpen bool) *List {
	t.Helper()
	l := NewList(kv, zap.NewNop(), Config{FailOpen: failOpen, BcryptCost: bcrypt.MinCost})
	t.Cleanup(l.Flush)
	return l
}

func TestEmptyListFailOpenAuthorizesEveryone(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), true)
	assert.True(t, l.IsAuthorized("anyone@example.com"))
}

func TestEmptyListFailClosedDeniesEveryone(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), false)
	assert.False(t, l.IsAuthorized("anyone@example.com"))
}

func TestNonEmptyListOnlyAuthorizesMembers(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), true)

	added, err := l.Add("Ops@Example.com", "")
	require.NoError(t, err)
	require.True(t, added)

	assert.True(t, l.IsAuthorized("ops@example.com"))
	assert.True(t, l.IsAuthorized("  OPS@example.COM  "), "matching is case-insensitive and trimmed")
	assert.False(t, l.IsAuthorized("other@example.com"), "fail-open only applies to an empty list")
}

func TestAddNormalizesAndRejectsDuplicates(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), true)

	added, err := l.Add(" Ops@Example.com ", "")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"ops@example.com"}, l.Emails())

	again, err := l.Add("OPS@EXAMPLE.COM", "")
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, 1, l.Len())
}

func TestAddRejectsBlankEmail(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), true)
	_, err := l.Add("   ", "")
	assert.Error(t, err)
}

func TestRemoveIsIdempotent(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), true)
	_, err := l.Add("ops@example.com", "")
	require.NoError(t, err)

	l.Remove("OPS@example.com")
	assert.Equal(t, 0, l.Len())
	l.Remove("ops@example.com")
	assert.Equal(t, 0, l.Len())
}

func TestVerifyPIN(t *testing.T) {
	l := newTestList(t, kvstore.NewMemoryStore(), true)
	_, err := l.Add("pin@example.com", "4321")
	require.NoError(t, err)
	_, err = l.Add("nopin@example.com", "")
	require.NoError(t, err)

	assert.True(t, l.VerifyPIN("pin@example.com", "4321"))
	assert.False(t, l.VerifyPIN("pin@example.com", "0000"))
	assert.True(t, l.VerifyPIN("nopin@example.com", "anything"), "operators without a stored PIN pass")
}

func TestListPersistsAndReloads(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	l := newTestList(t, kv, true)
	_, err := l.Add("a@example.com", "")
	require.NoError(t, err)
	_, err = l.Add("b@example.com", "")
	require.NoError(t, err)
	l.Flush()

	reloaded := newTestList(t, kv, true)
	require.NoError(t, reloaded.Load(context.Background(), kv))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, reloaded.Emails())
}

func TestLoadMissingKeyStartsEmpty(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	l := newTestList(t, kv, true)
	require.NoError(t, l.Load(context.Background(), kv))
	assert.Equal(t, 0, l.Len())
}
