package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack/isp-ops-service/internal/domain"
)

func TestInstallationLifecycle(t *testing.T) {
	st := newTestStore(t)
	svc := NewFieldOpsService(st, nil)
	client := seedClient(t, st)

	record, err := svc.CreateInstallation(context.Background(), client.ID, "tech-3", "second floor")
	require.NoError(t, err)
	assert.Equal(t, "INS-001", record.ID)
	assert.Equal(t, domain.WorkStatusPending, record.Status)

	scheduled, err := svc.UpdateInstallationStatus(context.Background(), record.ID, domain.WorkStatusScheduled, "crew booked", "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkStatusScheduled, scheduled.Status)
	require.Len(t, scheduled.History, 1)
	assert.Equal(t, string(domain.WorkStatusPending), scheduled.History[0].From)
}

func TestFieldworkCreationRequiresExistingClient(t *testing.T) {
	st := newTestStore(t)
	svc := NewFieldOpsService(st, nil)

	_, err := svc.CreateInstallation(context.Background(), "CLI-404", "", "")
	assert.Error(t, err)
	_, err = svc.CreateDerivation(context.Background(), "CLI-404", "zone", "")
	assert.Error(t, err)
	_, err = svc.CreatePostSaleCase(context.Background(), "CLI-404", "slow speeds", "")
	assert.Error(t, err)
	_, err = svc.CreateAdminRequest(context.Background(), "CLI-404", "plan-change", "")
	assert.Error(t, err)
}

func TestEachFieldworkCollectionHasItsOwnIDSequence(t *testing.T) {
	st := newTestStore(t)
	svc := NewFieldOpsService(st, nil)
	client := seedClient(t, st)

	derivation, err := svc.CreateDerivation(context.Background(), client.ID, "south-3", "low optical power")
	require.NoError(t, err)
	postsale, err := svc.CreatePostSaleCase(context.Background(), client.ID, "follow-up", "")
	require.NoError(t, err)
	request, err := svc.CreateAdminRequest(context.Background(), client.ID, "ownership-transfer", "")
	require.NoError(t, err)

	assert.Equal(t, "DRV-001", derivation.ID)
	assert.Equal(t, "PSV-001", postsale.ID)
	assert.Equal(t, "REQ-001", request.ID)
}
