package domain

import "time"

// AuthorizedUser is an entry in the operator allow-list. Emails are stored
// lower-cased and trimmed. PINHash is optional; empty means no PIN required.
type AuthorizedUser struct {
	Email   string    `json:"email"`
	PINHash string    `json:"pin_hash,omitempty"`
	AddedAt time.Time `json:"added_at"`
}
