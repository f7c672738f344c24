package models

// RegisterRequest represents registration request
// @Description User registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Name     string `json:"name" binding:"required" example:"John Doe"`
	Role     string `json:"role,omitempty" example:"job_seeker"` // job_seeker (default) or recruiter
}

// LoginRequest represents login request
// @Description User login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// GoogleAuthRequest represents Google SSO authentication request
// @Description Google SSO authentication request
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UpdateProfileRequest represents profile update request
// @Description Profile update request
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" example:"John Smith"`
	Phone    string `json:"phone,omitempty" example:"+91 98765 43210"`
	Location string `json:"location,omitempty" example:"Mumbai"`
}

// UpdateRoleRequest represents an admin role change request
// @Description Admin role update request
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" example:"recruiter"`
}

// TokenResponse represents a token refresh response
// @Description Refreshed JWT token
type TokenResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Message string `json:"message,omitempty" example:"Token refreshed"`
}

// AuthResponse represents authentication response
// @Description Authentication response with JWT token
type AuthResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty" example:"Login successful"`
}

// ProfileResponse represents user profile response
// @Description User profile response
type ProfileResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message,omitempty" example:"Profile updated successfully"`
}
