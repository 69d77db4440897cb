package service

import (
	"context"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// FieldOpsService coordinates installations, external-plant derivations,
// post-sale cases and administrative requests. All four share the WorkStatus
// lifecycle.
type FieldOpsService struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// NewFieldOpsService constructs the service.
func NewFieldOpsService(st *store.Store, dispatcher events.Dispatcher) *FieldOpsService {
	return &FieldOpsService{store: st, dispatcher: dispatcher}
}

func (s *FieldOpsService) clientExists(clientID string) error {
	if _, ok := s.store.Clients.Get(clientID); !ok {
		return apperrors.NewNotFound("client", map[string]any{"id": clientID})
	}
	return nil
}

// CreateInstallation schedules an installation for a client.
func (s *FieldOpsService) CreateInstallation(ctx context.Context, clientID, technician, notes string) (domain.Installation, error) {
	if err := s.clientExists(clientID); err != nil {
		return domain.Installation{}, err
	}
	return s.store.Installations.Add(domain.Installation{
		ClientID:   clientID,
		Technician: technician,
		Notes:      notes,
		Status:     domain.WorkStatusPending,
	}), nil
}

// UpdateInstallationStatus transitions an installation.
func (s *FieldOpsService) UpdateInstallationStatus(ctx context.Context, id string, status domain.WorkStatus, reason, actor string) (domain.Installation, error) {
	record, found := s.store.Installations.Update(id, func(i *domain.Installation) {
		i.Status = status
	}, store.ChangeMeta{Reason: reason, Actor: actor})
	if !found {
		return domain.Installation{}, apperrors.NewNotFound("installation", map[string]any{"id": id})
	}
	return record, nil
}

// CreateDerivation opens an external-plant derivation without a source
// ticket (plant crews also receive direct reports).
func (s *FieldOpsService) CreateDerivation(ctx context.Context, clientID, zone, detail string) (domain.PlantDerivation, error) {
	if err := s.clientExists(clientID); err != nil {
		return domain.PlantDerivation{}, err
	}
	return s.store.Derivations.Add(domain.PlantDerivation{
		ClientID: clientID,
		Zone:     zone,
		Detail:   detail,
		Status:   domain.WorkStatusPending,
	}), nil
}

// UpdateDerivationStatus transitions a derivation.
func (s *FieldOpsService) UpdateDerivationStatus(ctx context.Context, id string, status domain.WorkStatus, reason, actor string) (domain.PlantDerivation, error) {
	record, found := s.store.Derivations.Update(id, func(d *domain.PlantDerivation) {
		d.Status = status
	}, store.ChangeMeta{Reason: reason, Actor: actor})
	if !found {
		return domain.PlantDerivation{}, apperrors.NewNotFound("derivation", map[string]any{"id": id})
	}
	return record, nil
}

// CreatePostSaleCase opens a follow-up case for a client.
func (s *FieldOpsService) CreatePostSaleCase(ctx context.Context, clientID, reason, detail string) (domain.PostSaleCase, error) {
	if err := s.clientExists(clientID); err != nil {
		return domain.PostSaleCase{}, err
	}
	return s.store.PostSale.Add(domain.PostSaleCase{
		ClientID: clientID,
		Reason:   reason,
		Detail:   detail,
		Status:   domain.WorkStatusPending,
	}), nil
}

// UpdatePostSaleStatus transitions a post-sale case.
func (s *FieldOpsService) UpdatePostSaleStatus(ctx context.Context, id string, status domain.WorkStatus, reason, actor string) (domain.PostSaleCase, error) {
	record, found := s.store.PostSale.Update(id, func(p *domain.PostSaleCase) {
		p.Status = status
	}, store.ChangeMeta{Reason: reason, Actor: actor})
	if !found {
		return domain.PostSaleCase{}, apperrors.NewNotFound("post-sale case", map[string]any{"id": id})
	}
	return record, nil
}

// CreateAdminRequest opens an administrative requirement for a client.
func (s *FieldOpsService) CreateAdminRequest(ctx context.Context, clientID, kind, detail string) (domain.AdminRequest, error) {
	if err := s.clientExists(clientID); err != nil {
		return domain.AdminRequest{}, err
	}
	return s.store.AdminRequests.Add(domain.AdminRequest{
		ClientID: clientID,
		Kind:     kind,
		Detail:   detail,
		Status:   domain.WorkStatusPending,
	}), nil
}

// UpdateAdminRequestStatus transitions an administrative requirement.
func (s *FieldOpsService) UpdateAdminRequestStatus(ctx context.Context, id string, status domain.WorkStatus, reason, actor string) (domain.AdminRequest, error) {
	record, found := s.store.AdminRequests.Update(id, func(r *domain.AdminRequest) {
		r.Status = status
	}, store.ChangeMeta{Reason: reason, Actor: actor})
	if !found {
		return domain.AdminRequest{}, apperrors.NewNotFound("admin request", map[string]any{"id": id})
	}
	return record, nil
}
