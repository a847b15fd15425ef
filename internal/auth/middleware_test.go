package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// testApp mounts a protected route behind the middleware, translating errors
// the way the transport layer does.
func testApp(tm *TokenManager, gates ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})

	middleware := NewMiddleware(tm)
	handlers := append([]fiber.Handler{middleware.Handle}, gates...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"uid": principal.UserID, "rol": principal.Role})
	})
	app.Get("/protegido", handlers...)
	return app
}

func errorBody(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload.Error
}

func TestMiddlewareMissingToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := testApp(tm)

	resp, err := app.Test(httptest.NewRequest("GET", "/protegido", nil))
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
	require.Equal(t, "Token no proporcionado", errorBody(t, resp.Body))
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := testApp(tm)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
	require.Equal(t, "Token no proporcionado", errorBody(t, resp.Body))
}

func TestMiddlewareInvalidToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := testApp(tm)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
	require.Equal(t, "Token inválido", errorBody(t, resp.Body))
}

func TestMiddlewareStoresPrincipal(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := testApp(tm)

	token, _, err := tm.Issue(42, domain.RoleAdmin, "Ana")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var payload struct {
		UID int64       `json:"uid"`
		Rol domain.Role `json:"rol"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, int64(42), payload.UID)
	require.Equal(t, domain.RoleAdmin, payload.Rol)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := testApp(tm, RequireRoles(domain.RoleAdmin))

	token, _, err := tm.Issue(7, domain.RoleCliente, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)
	require.Equal(t, "No tiene permisos para acceder a este recurso", errorBody(t, resp.Body))
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := testApp(tm, RequireRoles(domain.RoleAdmin, domain.RoleTecnico))

	token, _, err := tm.Issue(7, domain.RoleTecnico, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}
