package dto

import (
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/validate"
)

// CreateClientRequest is the registration payload for a new subscriber.
type CreateClientRequest struct {
	Name      string  `json:"name"`
	Document  string  `json:"document"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlanID    string  `json:"plan_id"`
}

// Validate checks required fields.
func (r *CreateClientRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "name", r.Name)
	msgs = validate.Required(msgs, "document", r.Document)
	msgs = validate.Required(msgs, "address", r.Address)
	return msgs
}

// ToInput sanitizes free-text fields and maps to the service input.
func (r *CreateClientRequest) ToInput() service.ClientCreateInput {
	return service.ClientCreateInput{
		Name:      validate.Sanitize(r.Name),
		Document:  validate.Sanitize(r.Document),
		Phone:     validate.Sanitize(r.Phone),
		Email:     validate.Sanitize(r.Email),
		Address:   validate.Sanitize(r.Address),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		PlanID:    validate.Sanitize(r.PlanID),
	}
}

// UpdateClientRequest carries optional contact-field changes.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ToInput sanitizes present fields and maps to the service input.
func (r *UpdateClientRequest) ToInput() service.ClientUpdateInput {
	return service.ClientUpdateInput{
		Name:    sanitizePtr(r.Name),
		Phone:   sanitizePtr(r.Phone),
		Email:   sanitizePtr(r.Email),
		Address: sanitizePtr(r.Address),
	}
}

// ChangeClientStatusRequest drives the client lifecycle.
type ChangeClientStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Validate checks the status is one of the known lifecycle states.
func (r *ChangeClientStatusRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "status", r.Status)
	switch domain.ClientStatus(r.Status) {
	case domain.ClientStatusActive, domain.ClientStatusSuspended, domain.ClientStatusRetired:
	default:
		msgs = append(msgs, "status must be ACTIVE, SUSPENDED or RETIRED")
	}
	return msgs
}

// ChangePlanRequest assigns a different service plan.
type ChangePlanRequest struct {
	PlanID string `json:"plan_id"`
}

// Validate checks required fields.
func (r *ChangePlanRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "plan_id", r.PlanID)
	return msgs
}

func sanitizePtr(value *string) *string {
	if value == nil {
		return nil
	}
	clean := validate.Sanitize(*value)
	return &clean
}
