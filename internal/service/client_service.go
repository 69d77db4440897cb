package service

import (
	"context"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// ClientService coordinates client lifecycle workflows.
type ClientService struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// NewClientService constructs the service.
func NewClientService(st *store.Store, dispatcher events.Dispatcher) *ClientService {
	return &ClientService{store: st, dispatcher: dispatcher}
}

// ClientCreateInput describes client registration payload.
type ClientCreateInput struct {
	Name      string
	Document  string
	Phone     string
	Email     string
	Address   string
	Latitude  float64
	Longitude float64
	PlanID    string
}

// ClientUpdateInput describes mutable contact fields.
type ClientUpdateInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// Create registers a new client in ACTIVE state.
func (s *ClientService) Create(ctx context.Context, input ClientCreateInput, actor string) domain.Client {
	client := s.store.Clients.Add(domain.Client{
		Name:      input.Name,
		Document:  input.Document,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		PlanID:    input.PlanID,
		Status:    domain.ClientStatusActive,
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventClientCreated,
		Collection: store.KeyClients,
		RecordID:   client.ID,
		Actor:      actor,
	})
	return client
}

// Update merges contact fields into an existing client.
func (s *ClientService) Update(ctx context.Context, id string, input ClientUpdateInput, actor string) (domain.Client, error) {
	client, found := s.store.Clients.Update(id, func(c *domain.Client) {
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.Phone != nil {
			c.Phone = *input.Phone
		}
		if input.Email != nil {
			c.Email = *input.Email
		}
		if input.Address != nil {
			c.Address = *input.Address
		}
	}, store.ChangeMeta{Actor: actor})
	if !found {
		return domain.Client{}, apperrors.NewNotFound("client", map[string]any{"id": id})
	}
	return client, nil
}

// ChangeStatus transitions the client lifecycle; the transition is recorded
// in the client's history.
func (s *ClientService) ChangeStatus(ctx context.Context, id string, status domain.ClientStatus, reason, actor string) (domain.Client, error) {
	client, found := s.store.Clients.Update(id, func(c *domain.Client) {
		c.Status = status
	}, store.ChangeMeta{Reason: reason, Actor: actor})
	if !found {
		return domain.Client{}, apperrors.NewNotFound("client", map[string]any{"id": id})
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventClientStatusChanged,
		Collection: store.KeyClients,
		RecordID:   client.ID,
		Actor:      actor,
		Payload:    events.StatusChangedPayload{NewStatus: string(status), Reason: reason},
	})
	return client, nil
}

// ChangePlan assigns a different plan to the client.
func (s *ClientService) ChangePlan(ctx context.Context, id, planID, actor string) (domain.Client, error) {
	client, found := s.store.Clients.Update(id, func(c *domain.Client) {
		c.PlanID = planID
	}, store.ChangeMeta{Actor: actor})
	if !found {
		return domain.Client{}, apperrors.NewNotFound("client", map[string]any{"id": id})
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventClientPlanChanged,
		Collection: store.KeyClients,
		RecordID:   client.ID,
		Actor:      actor,
	})
	return client, nil
}
