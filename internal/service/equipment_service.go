package service

import (
	"context"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// EquipmentService coordinates CPE inventory workflows.
type EquipmentService struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// NewEquipmentService constructs the service.
func NewEquipmentService(st *store.Store, dispatcher events.Dispatcher) *EquipmentService {
	return &EquipmentService{store: st, dispatcher: dispatcher}
}

// EquipmentCreateInput describes inventory registration payload.
type EquipmentCreateInput struct {
	Serial string
	MAC    string
	Model  string
}

// Register adds a unit to inventory in AVAILABLE state.
func (s *EquipmentService) Register(ctx context.Context, input EquipmentCreateInput, actor string) domain.Equipment {
	return s.store.Equipment.Add(domain.Equipment{
		Serial: input.Serial,
		MAC:    input.MAC,
		Model:  input.Model,
		Status: domain.EquipmentStatusAvailable,
	})
}

// Assign installs an available unit at a client site.
func (s *EquipmentService) Assign(ctx context.Context, equipmentID, clientID, actor string) (domain.Equipment, error) {
	unit, ok := s.store.Equipment.Get(equipmentID)
	if !ok {
		return domain.Equipment{}, apperrors.NewNotFound("equipment", map[string]any{"id": equipmentID})
	}
	if unit.Status != domain.EquipmentStatusAvailable {
		return domain.Equipment{}, apperrors.NewConflict("equipment not available", map[string]any{"status": unit.Status})
	}
	if _, ok := s.store.Clients.Get(clientID); !ok {
		return domain.Equipment{}, apperrors.NewNotFound("client", map[string]any{"id": clientID})
	}

	updated, _ := s.store.Equipment.Update(equipmentID, func(e *domain.Equipment) {
		e.Status = domain.EquipmentStatusInstalled
		e.ClientID = clientID
	}, store.ChangeMeta{Reason: "installed at client site", Actor: actor})

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEquipmentAssigned,
		Collection: store.KeyEquipment,
		RecordID:   equipmentID,
		Actor:      actor,
		Payload:    events.EquipmentAssignedPayload{ClientID: clientID},
	})
	return updated, nil
}

// Release returns an installed unit to inventory.
func (s *EquipmentService) Release(ctx context.Context, equipmentID, reason, actor string) (domain.Equipment, error) {
	unit, ok := s.store.Equipment.Get(equipmentID)
	if !ok {
		return domain.Equipment{}, apperrors.NewNotFound("equipment", map[string]any{"id": equipmentID})
	}
	if unit.Status != domain.EquipmentStatusInstalled {
		return domain.Equipment{}, apperrors.NewConflict("equipment not installed", map[string]any{"status": unit.Status})
	}

	updated, _ := s.store.Equipment.Update(equipmentID, func(e *domain.Equipment) {
		e.Status = domain.EquipmentStatusAvailable
		e.ClientID = ""
	}, store.ChangeMeta{Reason: reason, Actor: actor})

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEquipmentReleased,
		Collection: store.KeyEquipment,
		RecordID:   equipmentID,
		Actor:      actor,
	})
	return updated, nil
}

// MarkDamaged flags a unit as damaged, keeping any client reference for
// later retrieval by the field crew.
func (s *EquipmentService) MarkDamaged(ctx context.Context, equipmentID, reason, actor string) (domain.Equipment, error) {
	updated, found := s.store.Equipment.Update(equipmentID, func(e *domain.Equipment) {
		e.Status = domain.EquipmentStatusDamaged
	}, store.ChangeMeta{Reason: reason, Actor: actor})
	if !found {
		return domain.Equipment{}, apperrors.NewNotFound("equipment", map[string]any{"id": equipmentID})
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEquipmentDamaged,
		Collection: store.KeyEquipment,
		RecordID:   equipmentID,
		Actor:      actor,
		Payload:    events.StatusChangedPayload{NewStatus: string(domain.EquipmentStatusDamaged), Reason: reason},
	})
	return updated, nil
}
