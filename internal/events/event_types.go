package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventAny subscribes a handler to every published event.
	EventAny EventType = "*"

	EventClientCreated       EventType = "client_created"
	EventClientStatusChanged EventType = "client_status_changed"
	EventClientPlanChanged   EventType = "client_plan_changed"

	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketEscalated     EventType = "ticket_escalated"

	EventEquipmentAssigned EventType = "equipment_assigned"
	EventEquipmentReleased EventType = "equipment_released"
	EventEquipmentDamaged  EventType = "equipment_damaged"

	EventCollectionMutated EventType = "collection_mutated"
	EventSyncCompleted     EventType = "sync_completed"
)

// Event represents a domain event emitted by services and slices.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Collection string    `json:"collection,omitempty"`
	RecordID   string    `json:"record_id,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Reason    string `json:"reason,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Technician string `json:"technician"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	DerivationID string `json:"derivation_id"`
	Zone         string `json:"zone,omitempty"`
}

// EquipmentAssignedPayload payload.
type EquipmentAssignedPayload struct {
	ClientID string `json:"client_id"`
}

// SyncCompletedPayload payload.
type SyncCompletedPayload struct {
	Collections []string `json:"collections"`
	Failed      []string `json:"failed,omitempty"`
}
