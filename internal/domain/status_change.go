package domain

import "time"

// StatusChange is an immutable entry in a record's status history.
// Histories are prepended (most-recent-first) and never edited or truncated.
type StatusChange struct {
	At     time.Time `json:"at"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Reason string    `json:"reason,omitempty"`
	Actor  string    `json:"actor,omitempty"`
}

// PushStatusChange prepends an entry to a history log.
func PushStatusChange(history []StatusChange, entry StatusChange) []StatusChange {
	return append([]StatusChange{entry}, history...)
}
