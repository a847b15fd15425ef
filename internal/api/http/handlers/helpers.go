package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/auth"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("ID inválido")
	}
	return id, nil
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Token no proporcionado")
	}
	return principal, nil
}
