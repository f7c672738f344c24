package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtatkal/backend/config"
	"github.com/jobtatkal/backend/models"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()

	user := &models.User{
		ID:    "user@example.com",
		Email: "user@example.com",
		Name:  "Test User",
		Role:  models.RoleRecruiter,
	}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleRecruiter, claims.Role)
	assert.Equal(t, "jobtatkal", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(&config.Config{JWTSecret: "different-secret", JWTExpiryHours: 1})

	token, err := svc.GenerateToken(&models.User{ID: "u", Email: "u@example.com"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenCarriesClaims(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(&models.User{
		ID:    "user@example.com",
		Email: "user@example.com",
		Role:  models.RoleJobSeeker,
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.UserID)
	assert.Equal(t, models.RoleJobSeeker, claims.Role)
}

func TestRefreshTokenRejectsInvalid(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.RefreshToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
