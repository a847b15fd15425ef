package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/slotfleet/maintenance-service/internal/auth"
	"github.com/slotfleet/maintenance-service/internal/config"
	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 240,
			BcryptCost:      bcrypt.MinCost,
		},
	}
	return NewAuthService(cfg, repo), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Name:         username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, _, _, err := svc.Login(context.Background(), "nadie@example.com", "secret")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 404, domainErr.HTTPStatus)
	require.Equal(t, "Usuario no encontrado", domainErr.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	seedUser(t, repo, "ana", "ana@example.com", "correcta", domain.RoleAdmin)

	_, _, _, err := svc.Login(context.Background(), "ana@example.com", "incorrecta")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 401, domainErr.HTTPStatus)
	require.Equal(t, "Contraseña inválida", domainErr.Message)
}

func TestLoginIssuesToken(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	seeded := seedUser(t, repo, "ana", "ana@example.com", "correcta", domain.RoleTecnico)

	user, token, exp, err := svc.Login(context.Background(), "ana@example.com", "correcta")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, claims.UserID)
	require.Equal(t, domain.RoleTecnico, claims.Role)
}

func TestRegisterDefaultsToClienteRole(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	user, token, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "nuevo",
		Email:    "nuevo@example.com",
		Password: "secreto",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleCliente, user.Role)
	require.NotEmpty(t, token)
	require.NotEqual(t, "secreto", user.PasswordHash)
}

func TestRegisterChecksUsernameBeforeEmail(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	seedUser(t, repo, "ocupado", "ocupado@example.com", "x", domain.RoleCliente)

	// Same username AND same email: the username conflict must win.
	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "ocupado",
		Email:    "ocupado@example.com",
		Password: "secreto",
	})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 409, domainErr.HTTPStatus)
	require.Equal(t, "El nombre de usuario ya está en uso", domainErr.Message)

	// Fresh username, taken email.
	_, _, _, err = svc.Register(context.Background(), RegisterInput{
		Username: "libre",
		Email:    "ocupado@example.com",
		Password: "secreto",
	})
	require.Error(t, err)
	domainErr = apperrors.ToDomainError(err)
	require.Equal(t, 409, domainErr.HTTPStatus)
	require.Equal(t, "El correo ya está registrado", domainErr.Message)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "nuevo",
		Email:    "nuevo@example.com",
		Password: "secreto",
		Role:     "superusuario",
	})
	require.Error(t, err)
	require.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateUserMergePatchLeavesOtherFields(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	seeded := seedUser(t, repo, "ana", "ana@example.com", "secreto", domain.RoleCliente)

	newName := "Ana María"
	updated, err := svc.UpdateUser(context.Background(), seeded.ID, UserUpdateInput{Name: &newName})
	require.NoError(t, err)

	require.Equal(t, "Ana María", updated.Name)
	require.Equal(t, "ana", updated.Username)
	require.Equal(t, "ana@example.com", updated.Email)
	require.Equal(t, domain.RoleCliente, updated.Role)
	require.True(t, updated.Active)
}

func TestDeleteUserReturnsRemovedRow(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	seeded := seedUser(t, repo, "ana", "ana@example.com", "secreto", domain.RoleCliente)

	removed, err := svc.DeleteUser(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, removed.ID)

	_, err = svc.GetUser(context.Background(), seeded.ID)
	require.Error(t, err)
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
