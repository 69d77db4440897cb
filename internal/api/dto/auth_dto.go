package dto

import (
	"time"

	"github.com/fieldstack/isp-ops-service/internal/validate"
)

// LoginRequest authenticates an operator by allow-listed email plus optional
// PIN.
type LoginRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// Validate checks required fields.
func (r *LoginRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "email", r.Email)
	return msgs
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// AddOperatorRequest registers an email on the allow-list.
type AddOperatorRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// Validate checks required fields.
func (r *AddOperatorRequest) Validate() validate.Messages {
	var msgs validate.Messages
	msgs = validate.Required(msgs, "email", r.Email)
	return msgs
}
