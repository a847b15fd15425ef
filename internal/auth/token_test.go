package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 4*time.Hour)

	token, exp, err := tm.Issue(42, domain.RoleTecnico, "Luis")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(4*time.Hour), exp, time.Minute)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, domain.RoleTecnico, claims.Role)
	require.Equal(t, "Luis", claims.Name)
	require.Equal(t, "42", claims.Subject)
}

func TestTokenDefaultTTLIsFourHours(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	require.Equal(t, 4*time.Hour, tm.TTL())
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	// Hand-build a token already past its window, signed with the right key.
	claims := &Claims{
		UserID: 42,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(1, domain.RoleAdmin, "")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.Error(t, err)
}

func TestTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	claims := &Claims{
		UserID: 1,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.Error(t, err)
}

func TestTokenRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	claims := &Claims{
		UserID: 1,
		Role:   "superusuario",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.Error(t, err)
}
