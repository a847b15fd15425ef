package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// RequireRoles restricts a route to the given role set. The set is fixed at
// registration time and never mutated afterwards.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Token no proporcionado")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("No tiene permisos para acceder a este recurso")
		}
		return c.Next()
	}
}
