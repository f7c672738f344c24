package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/config"
	"github.com/jobtatkal/backend/models"
)

func newRefreshRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(nil, jwtService, nil)
	r.POST("/api/auth/refresh", h.RefreshToken)
	return r
}

func TestRefreshTokenEndpoint(t *testing.T) {
	jwtService := auth.NewJWTService(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1})
	r := newRefreshRouter(jwtService)

	token, err := jwtService.GenerateToken(&models.User{
		ID:    "user@example.com",
		Email: "user@example.com",
		Role:  models.RoleJobSeeker,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.UserID)
}

func TestRefreshTokenEndpointRejectsMissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1})
	r := newRefreshRouter(jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenEndpointRejectsGarbage(t *testing.T) {
	jwtService := auth.NewJWTService(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1})
	r := newRefreshRouter(jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
