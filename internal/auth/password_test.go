package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("secreto123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secreto123", hashed)

	require.NoError(t, ComparePassword(hashed, "secreto123"))
	require.Error(t, ComparePassword(hashed, "otra-clave"))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	hashed, err := HashPassword("secreto123", 99)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hashed, "secreto123"))
}
