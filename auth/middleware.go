package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/models"
)

const (
	// AuthClaimsKey is the key used to store JWT claims in gin context
	AuthClaimsKey = "auth_claims"
)

// AuthMiddleware creates a middleware for JWT authentication
func AuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := claimsFromHeader(c, jwtService)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: errMsg,
				Code:  http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware creates a middleware that optionally authenticates.
// If a token is present and valid, claims are added to context; otherwise
// the request continues anonymously.
func OptionalAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := claimsFromHeader(c, jwtService); claims != nil {
			c.Set(AuthClaimsKey, claims)
		}
		c.Next()
	}
}

// RequireRole creates a middleware that gates a route group to the given
// roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetAuthClaims(c)
		if claims != nil {
			for _, role := range roles {
				if claims.Role == role {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error: "Insufficient permissions",
			Code:  http.StatusForbidden,
		})
		c.Abort()
	}
}

func claimsFromHeader(c *gin.Context, jwtService *JWTService) (*Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, "Invalid authorization header format"
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, "Invalid or expired token"
	}
	return claims, ""
}

// GetAuthClaims retrieves auth claims from gin context
func GetAuthClaims(c *gin.Context) *Claims {
	claims, exists := c.Get(AuthClaimsKey)
	if !exists {
		return nil
	}
	return claims.(*Claims)
}

// IsAuthenticated checks if user is authenticated
func IsAuthenticated(c *gin.Context) bool {
	return GetAuthClaims(c) != nil
}
