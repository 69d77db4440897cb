package dto

import (
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/validate"
)

// CreateTicketRequest opens a trouble ticket for an existing client.
type CreateTicketRequest struct {
	ClientID    string `json:"client_id"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// Validate checks required fields and the priority value when present.
func (r *CreateTicketRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "client_id", r.ClientID)
	msgs = validate.Required(msgs, "category", r.Category)
	msgs = validate.MinLen(msgs, "description", r.Description, 5)
	if r.Priority != "" {
		switch domain.TicketPriority(r.Priority) {
		case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh, domain.TicketPriorityUrgent:
		default:
			msgs = append(msgs, "priority must be LOW, MEDIUM, HIGH or URGENT")
		}
	}
	return msgs
}

// ToInput sanitizes free-text fields and maps to the service input.
func (r *CreateTicketRequest) ToInput() service.TicketCreateInput {
	return service.TicketCreateInput{
		ClientID:    r.ClientID,
		Category:    validate.Sanitize(r.Category),
		Subcategory: validate.Sanitize(r.Subcategory),
		Priority:    domain.TicketPriority(r.Priority),
		Description: validate.Sanitize(r.Description),
	}
}

// AssignTicketRequest names the responsible technician.
type AssignTicketRequest struct {
	Technician string `json:"technician"`
}

// Validate checks required fields.
func (r *AssignTicketRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "technician", r.Technician)
	return msgs
}

// ChangeTicketStatusRequest drives the ticket lifecycle.
type ChangeTicketStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Validate checks the status is one of the known lifecycle states.
func (r *ChangeTicketStatusRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "status", r.Status)
	switch domain.TicketStatus(r.Status) {
	case domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.TicketStatusEscalated,
		domain.TicketStatusResolved, domain.TicketStatusClosed:
	default:
		msgs = append(msgs, "status must be OPEN, IN_PROGRESS, ESCALATED, RESOLVED or CLOSED")
	}
	return msgs
}

// EscalateTicketRequest derives a ticket to the external-plant crew.
type EscalateTicketRequest struct {
	Zone   string `json:"zone"`
	Detail string `json:"detail"`
}

// Validate checks required fields.
func (r *EscalateTicketRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "zone", r.Zone)
	return msgs
}
