package domain

import "time"

// WorkStatus is the lifecycle shared by field-work records: installations,
// external-plant derivations, post-sale cases and administrative requests.
type WorkStatus string

const (
	WorkStatusPending    WorkStatus = "PENDING"
	WorkStatusScheduled  WorkStatus = "SCHEDULED"
	WorkStatusInProgress WorkStatus = "IN_PROGRESS"
	WorkStatusCompleted  WorkStatus = "COMPLETED"
	WorkStatusCancelled  WorkStatus = "CANCELLED"
)

// Installation is a scheduled service installation at a client site.
type Installation struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"client_id"`
	Technician   string         `json:"technician,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	Status       WorkStatus     `json:"status"`
	History      []StatusChange `json:"history,omitempty"`
	RegisteredAt time.Time      `json:"registered_at"`
}

// PlantDerivation is an escalation of a ticket to the external-plant crew.
type PlantDerivation struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"client_id"`
	TicketID     string         `json:"ticket_id,omitempty"`
	Zone         string         `json:"zone,omitempty"`
	Detail       string         `json:"detail,omitempty"`
	Status       WorkStatus     `json:"status"`
	History      []StatusChange `json:"history,omitempty"`
	RegisteredAt time.Time      `json:"registered_at"`
}

// PostSaleCase tracks a follow-up visit after an installation.
type PostSaleCase struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"client_id"`
	Reason       string         `json:"reason,omitempty"`
	Detail       string         `json:"detail,omitempty"`
	Status       WorkStatus     `json:"status"`
	History      []StatusChange `json:"history,omitempty"`
	RegisteredAt time.Time      `json:"registered_at"`
}

// AdminRequest is an administrative requirement raised by staff
// (plan change paperwork, billing disputes, ownership transfers).
type AdminRequest struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"client_id"`
	Kind         string         `json:"kind,omitempty"`
	Detail       string         `json:"detail,omitempty"`
	Status       WorkStatus     `json:"status"`
	History      []StatusChange `json:"history,omitempty"`
	RegisteredAt time.Time      `json:"registered_at"`
}
