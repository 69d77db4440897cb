package dto

import (
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/validate"
)

// RegisterEquipmentRequest adds a CPE unit to inventory.
type RegisterEquipmentRequest struct {
	Serial string `json:"serial"`
	MAC    string `json:"mac"`
	Model  string `json:"model"`
}

// Validate checks required fields.
func (r *RegisterEquipmentRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "serial", r.Serial)
	msgs = validate.Required(msgs, "model", r.Model)
	return msgs
}

// ToInput sanitizes and maps to the service input.
func (r *RegisterEquipmentRequest) ToInput() service.EquipmentCreateInput {
	return service.EquipmentCreateInput{
		Serial: validate.Sanitize(r.Serial),
		MAC:    validate.Sanitize(r.MAC),
		Model:  validate.Sanitize(r.Model),
	}
}

// AssignEquipmentRequest installs a unit at a client site.
type AssignEquipmentRequest struct {
	ClientID string `json:"client_id"`
}

// Validate checks required fields.
func (r *AssignEquipmentRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "client_id", r.ClientID)
	return msgs
}

// EquipmentReasonRequest carries the reason for a release or damage report.
type EquipmentReasonRequest struct {
	Reason string `json:"reason"`
}
