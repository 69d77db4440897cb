package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(kvstore.NewMemoryStore(), zap.NewNop(), store.Options{})
	t.Cleanup(st.Flush)
	return st
}

func seedClient(t *testing.T, st *store.Store) domain.Client {
	t.Helper()
	return st.Clients.Add(domain.Client{Name: "Ana", Document: "123", Status: domain.ClientStatusActive})
}

func seedTicket(t *testing.T, svc *TicketService, st *store.Store) domain.Ticket {
	t.Helper()
	client := seedClient(t, st)
	ticket, err := svc.Open(context.Background(), TicketCreateInput{
		ClientID:    client.ID,
		Category:    "connectivity",
		Description: "no signal since last night",
	}, "ops@example.com")
	require.NoError(t, err)
	return ticket
}

func TestOpenDefaultsPriorityAndStatus(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, events.NewInMemoryDispatcher())

	ticket := seedTicket(t, svc, st)
	assert.Equal(t, "TKT-001", ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
}

func TestOpenRequiresExistingClient(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, nil)

	_, err := svc.Open(context.Background(), TicketCreateInput{ClientID: "CLI-999", Category: "x"}, "")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestAssignMovesOpenTicketToInProgress(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, nil)
	ticket := seedTicket(t, svc, st)

	assigned, err := svc.Assign(context.Background(), ticket.ID, "tech-7", "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tech-7", assigned.Technician)
	assert.Equal(t, domain.TicketStatusInProgress, assigned.Status)
	require.Len(t, assigned.History, 1)
	assert.Equal(t, "assigned", assigned.History[0].Reason)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, nil)
	ticket := seedTicket(t, svc, st)

	_, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusResolved, "", "")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code, "OPEN cannot jump straight to RESOLVED")
}

func TestUpdateStatusResolvedSetsTimestamp(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, nil)
	ticket := seedTicket(t, svc, st)

	_, err := svc.Assign(context.Background(), ticket.ID, "tech-7", "")
	require.NoError(t, err)

	resolved, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusResolved, "fixed splice", "ops@example.com")
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)

	// Reopening clears the resolution timestamp.
	reopened, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusInProgress, "came back", "")
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt)
}

func TestClosedTicketsAreTerminal(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, nil)
	ticket := seedTicket(t, svc, st)

	_, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusClosed, "duplicate", "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusOpen, "", "")
	assert.Error(t, err)
}

func TestEscalateCreatesDerivationAndMarksTicket(t *testing.T) {
	st := newTestStore(t)
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventTicketEscalated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewTicketService(st, dispatcher)
	ticket := seedTicket(t, svc, st)

	derivation, err := svc.Escalate(context.Background(), ticket.ID, "north-12", "fiber cut at pole", "ops@example.com")
	require.NoError(t, err)

	assert.Equal(t, "DRV-001", derivation.ID)
	assert.Equal(t, ticket.ID, derivation.TicketID)
	assert.Equal(t, ticket.ClientID, derivation.ClientID)
	assert.Equal(t, domain.WorkStatusPending, derivation.Status)

	escalated, ok := st.Tickets.Get(ticket.ID)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusEscalated, escalated.Status)

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.TicketEscalatedPayload)
	require.True(t, ok)
	assert.Equal(t, derivation.ID, payload.DerivationID)
}

func TestEscalateRejectsClosedTicket(t *testing.T) {
	st := newTestStore(t)
	svc := NewTicketService(st, nil)
	ticket := seedTicket(t, svc, st)

	_, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusClosed, "", "")
	require.NoError(t, err)

	_, err = svc.Escalate(context.Background(), ticket.ID, "zone", "", "")
	assert.Error(t, err)
	assert.Equal(t, 0, st.Derivations.Len())
}
