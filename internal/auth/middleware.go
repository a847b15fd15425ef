package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the rest of the request.
// Handlers read it for row-level scoping (a cliente only sees owned rows).
type Principal struct {
	UserID int64
	Role   domain.Role
	Name   string
}

// Middleware validates bearer credentials and stores the principal.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Missing header and
// invalid token are both 401; only the message text differs.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Token no proporcionado")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Token no proporcionado")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Token inválido")
	}

	c.Locals(principalKey, &Principal{
		UserID: claims.UserID,
		Role:   claims.Role,
		Name:   claims.Name,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
