package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/access"
	"github.com/fieldstack/isp-ops-service/internal/api/dto"
	"github.com/fieldstack/isp-ops-service/internal/auth"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// AuthHandler serves login and allow-list administration.
type AuthHandler struct {
	tokens  *auth.TokenManager
	allowed *access.List
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(tokens *auth.TokenManager, allowed *access.List) *AuthHandler {
	return &AuthHandler{tokens: tokens, allowed: allowed}
}

// Login issues a session token for an allow-listed operator. The PIN is only
// checked when the operator has one stored.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	email := access.Normalize(req.Email)
	if !h.allowed.IsAuthorized(email) {
		return apperrors.NewForbidden("email not authorized")
	}
	if !h.allowed.VerifyPIN(email, req.PIN) {
		return apperrors.NewUnauthorized("invalid pin")
	}

	token, expiresAt, err := h.tokens.GenerateToken(email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     email,
	}})
}

// ListOperators returns the allow-list emails in insertion order.
func (h *AuthHandler) ListOperators(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.allowed.Emails()})
}

// AddOperator registers an email; adding a duplicate is reported as a
// conflict rather than silently ignored.
func (h *AuthHandler) AddOperator(c *fiber.Ctx) error {
	var req dto.AddOperatorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	added, err := h.allowed.Add(req.Email, req.PIN)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	if !added {
		return apperrors.NewConflict("email already authorized", map[string]any{"email": access.Normalize(req.Email)})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"email": access.Normalize(req.Email)}})
}

// RemoveOperator deletes an email; removing an absent email still succeeds.
func (h *AuthHandler) RemoveOperator(c *fiber.Ctx) error {
	h.allowed.Remove(c.Params("email"))
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckAccess reports whether an email would be authorized right now.
func (h *AuthHandler) CheckAccess(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return apperrors.NewValidationError("email query parameter required", nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"email":      access.Normalize(email),
		"authorized": h.allowed.IsAuthorized(email),
	}})
}
