package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// TicketService coordinates trouble-ticket workflows.
type TicketService struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(st *store.Store, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{store: st, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	ClientID    string
	Category    string
	Subcategory string
	Priority    domain.TicketPriority
	Description string
}

// Open creates a ticket for an existing client.
func (s *TicketService) Open(ctx context.Context, input TicketCreateInput, actor string) (domain.Ticket, error) {
	if _, ok := s.store.Clients.Get(input.ClientID); !ok {
		return domain.Ticket{}, apperrors.NewNotFound("client", map[string]any{"id": input.ClientID})
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := s.store.Tickets.Add(domain.Ticket{
		ClientID:    input.ClientID,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		Description: input.Description,
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketCreated,
		Collection: store.KeyTickets,
		RecordID:   ticket.ID,
		Actor:      actor,
	})
	return ticket, nil
}

// Assign sets the responsible technician and moves an open ticket to
// IN_PROGRESS.
func (s *TicketService) Assign(ctx context.Context, id, technician, actor string) (domain.Ticket, error) {
	ticket, found := s.store.Tickets.Update(id, func(t *domain.Ticket) {
		t.Technician = technician
		if t.Status == domain.TicketStatusOpen {
			t.Status = domain.TicketStatusInProgress
		}
	}, store.ChangeMeta{Reason: "assigned", Actor: actor})
	if !found {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketAssigned,
		Collection: store.KeyTickets,
		RecordID:   ticket.ID,
		Actor:      actor,
		Payload:    events.TicketAssignedPayload{Technician: technician},
	})
	return ticket, nil
}

// UpdateStatus transitions a ticket through its lifecycle. Invalid
// transitions are rejected.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, newStatus domain.TicketStatus, reason, actor string) (domain.Ticket, error) {
	current, ok := s.store.Tickets.Get(id)
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if !isValidTransition(current.Status, newStatus) {
		return domain.Ticket{}, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": current.Status,
			"to":   newStatus,
		})
	}

	oldStatus := current.Status
	ticket, _ := s.store.Tickets.Update(id, func(t *domain.Ticket) {
		t.Status = newStatus
		if newStatus == domain.TicketStatusResolved {
			now := time.Now()
			t.ResolvedAt = &now
		} else if t.ResolvedAt != nil && newStatus != domain.TicketStatusClosed {
			t.ResolvedAt = nil
		}
	}, store.ChangeMeta{Reason: reason, Actor: actor})

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketStatusChanged,
		Collection: store.KeyTickets,
		RecordID:   ticket.ID,
		Actor:      actor,
		Payload: events.StatusChangedPayload{
			OldStatus: string(oldStatus),
			NewStatus: string(newStatus),
			Reason:    reason,
		},
	})
	return ticket, nil
}

// Escalate derives a ticket to the external-plant crew: creates a
// PlantDerivation referencing the ticket and marks the ticket ESCALATED.
// The two writes are independent; there is no transactional boundary across
// collections.
func (s *TicketService) Escalate(ctx context.Context, id, zone, detail, actor string) (domain.PlantDerivation, error) {
	ticket, ok := s.store.Tickets.Get(id)
	if !ok {
		return domain.PlantDerivation{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if ticket.Status == domain.TicketStatusClosed {
		return domain.PlantDerivation{}, apperrors.NewConflict("closed ticket cannot be escalated", nil)
	}

	derivation := s.store.Derivations.Add(domain.PlantDerivation{
		ClientID: ticket.ClientID,
		TicketID: ticket.ID,
		Zone:     zone,
		Detail:   detail,
		Status:   domain.WorkStatusPending,
	})

	s.store.Tickets.Update(id, func(t *domain.Ticket) {
		t.Status = domain.TicketStatusEscalated
	}, store.ChangeMeta{Reason: "escalated to external plant", Actor: actor})

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketEscalated,
		Collection: store.KeyTickets,
		RecordID:   ticket.ID,
		Actor:      actor,
		Payload:    events.TicketEscalatedPayload{DerivationID: derivation.ID, Zone: zone},
	})
	return derivation, nil
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusEscalated, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusEscalated, domain.TicketStatusResolved, domain.TicketStatusOpen},
	domain.TicketStatusEscalated:  {domain.TicketStatusInProgress, domain.TicketStatusResolved},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
