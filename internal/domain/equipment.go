package domain

import "time"

// EquipmentStatus enumerates inventory states.
type EquipmentStatus string

const (
	EquipmentStatusAvailable EquipmentStatus = "AVAILABLE"
	EquipmentStatusInstalled EquipmentStatus = "INSTALLED"
	EquipmentStatusDamaged   EquipmentStatus = "DAMAGED"
)

// Equipment is a CPE inventory item (router, ONU, antenna).
type Equipment struct {
	ID           string          `json:"id"`
	Serial       string          `json:"serial"`
	MAC          string          `json:"mac"`
	Model        string          `json:"model"`
	Status       EquipmentStatus `json:"status"`
	ClientID     string          `json:"client_id,omitempty"`
	History      []StatusChange  `json:"history,omitempty"`
	RegisteredAt time.Time       `json:"registered_at"`
}
