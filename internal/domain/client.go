package domain

import "time"

// ClientStatus enumerates client lifecycle states.
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "ACTIVE"
	ClientStatusSuspended ClientStatus = "SUSPENDED"
	ClientStatusRetired   ClientStatus = "RETIRED"
)

// Client is a subscriber record. Clients are never hard-deleted in the normal
// flow; lifecycle is driven by Status.
type Client struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Document     string         `json:"document"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	Address      string         `json:"address"`
	Latitude     float64        `json:"latitude,omitempty"`
	Longitude    float64        `json:"longitude,omitempty"`
	PlanID       string         `json:"plan_id,omitempty"`
	Status       ClientStatus   `json:"status"`
	History      []StatusChange `json:"history,omitempty"`
	RegisteredAt time.Time      `json:"registered_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}
