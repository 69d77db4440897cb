package dto

import (
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/validate"
)

// CreateInstallationRequest schedules an installation for a client.
type CreateInstallationRequest struct {
	ClientID   string `json:"client_id"`
	Technician string `json:"technician"`
	Notes      string `json:"notes"`
}

// Validate checks required fields.
func (r *CreateInstallationRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "client_id", r.ClientID)
	return msgs
}

// CreateDerivationRequest opens an external-plant derivation directly.
type CreateDerivationRequest struct {
	ClientID string `json:"client_id"`
	Zone     string `json:"zone"`
	Detail   string `json:"detail"`
}

// Validate checks required fields.
func (r *CreateDerivationRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "client_id", r.ClientID)
	msgs = validate.Required(msgs, "zone", r.Zone)
	return msgs
}

// CreatePostSaleRequest opens a post-sale follow-up case.
type CreatePostSaleRequest struct {
	ClientID string `json:"client_id"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail"`
}

// Validate checks required fields.
func (r *CreatePostSaleRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "client_id", r.ClientID)
	msgs = validate.Required(msgs, "reason", r.Reason)
	return msgs
}

// CreateAdminRequestRequest opens an administrative requirement.
type CreateAdminRequestRequest struct {
	ClientID string `json:"client_id"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail"`
}

// Validate checks required fields.
func (r *CreateAdminRequestRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "client_id", r.ClientID)
	msgs = validate.Required(msgs, "kind", r.Kind)
	return msgs
}

// ChangeWorkStatusRequest drives the shared field-work lifecycle.
type ChangeWorkStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Validate checks the status is one of the known work states.
func (r *ChangeWorkStatusRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "status", r.Status)
	switch domain.WorkStatus(r.Status) {
	case domain.WorkStatusPending, domain.WorkStatusScheduled, domain.WorkStatusInProgress,
		domain.WorkStatusCompleted, domain.WorkStatusCancelled:
	default:
		msgs = append(msgs, "status must be PENDING, SCHEDULED, IN_PROGRESS, COMPLETED or CANCELLED")
	}
	return msgs
}
