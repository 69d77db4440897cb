package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/events"
)

func TestClientCreateStartsActive(t *testing.T) {
	st := newTestStore(t)
	dispatcher := events.NewInMemoryDispatcher()
	var created []events.Event
	dispatcher.Subscribe(events.EventClientCreated, func(_ context.Context, e events.Event) error {
		created = append(created, e)
		return nil
	})
	svc := NewClientService(st, dispatcher)

	client := svc.Create(context.Background(), ClientCreateInput{
		Name:     "Ana",
		Document: "123",
		Address:  "Main St 1",
	}, "ops@example.com")

	assert.Equal(t, "CLI-001", client.ID)
	assert.Equal(t, domain.ClientStatusActive, client.Status)
	require.Len(t, created, 1)
	assert.Equal(t, client.ID, created[0].RecordID)
}

func TestClientUpdateMergesOnlyPresentFields(t *testing.T) {
	st := newTestStore(t)
	svc := NewClientService(st, nil)
	client := svc.Create(context.Background(), ClientCreateInput{Name: "Ana", Document: "123", Phone: "111"}, "")

	phone := "222"
	updated, err := svc.Update(context.Background(), client.ID, ClientUpdateInput{Phone: &phone}, "ops@example.com")
	require.NoError(t, err)

	assert.Equal(t, "222", updated.Phone)
	assert.Equal(t, "Ana", updated.Name, "absent fields are untouched")
	assert.Empty(t, updated.History, "contact edits are not status changes")
	require.NotNil(t, updated.UpdatedAt)
}

func TestClientChangeStatusRecordsHistory(t *testing.T) {
	st := newTestStore(t)
	svc := NewClientService(st, nil)
	client := svc.Create(context.Background(), ClientCreateInput{Name: "Ana", Document: "123"}, "")

	suspended, err := svc.ChangeStatus(context.Background(), client.ID, domain.ClientStatusSuspended, "non-payment", "ops@example.com")
	require.NoError(t, err)

	assert.Equal(t, domain.ClientStatusSuspended, suspended.Status)
	require.Len(t, suspended.History, 1)
	assert.Equal(t, string(domain.ClientStatusActive), suspended.History[0].From)
	assert.Equal(t, "non-payment", suspended.History[0].Reason)
	assert.Equal(t, "ops@example.com", suspended.History[0].Actor)
}

func TestClientOperationsOnMissingIDFail(t *testing.T) {
	st := newTestStore(t)
	svc := NewClientService(st, nil)

	_, err := svc.ChangeStatus(context.Background(), "CLI-404", domain.ClientStatusRetired, "", "")
	assert.Error(t, err)
	_, err = svc.ChangePlan(context.Background(), "CLI-404", "plan-x", "")
	assert.Error(t, err)
	_, err = svc.Update(context.Background(), "CLI-404", ClientUpdateInput{}, "")
	assert.Error(t, err)
}
