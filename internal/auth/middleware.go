package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/access"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated operator.
type Principal struct {
	Email string
}

// Middleware validates bearer tokens and re-checks the allow-list on every
// request, so removing an operator takes effect before their token expires.
type Middleware struct {
	tokens  *TokenManager
	allowed *access.List
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, allowed *access.List) *Middleware {
	return &Middleware{tokens: tokens, allowed: allowed}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if !m.allowed.IsAuthorized(claims.Email) {
		return apperrors.NewForbidden("operator no longer authorized")
	}

	c.Locals(principalKey, &Principal{Email: claims.Email})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated operator.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
