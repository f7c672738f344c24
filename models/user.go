package models

import "time"

// Role constants
const (
	RoleJobSeeker = "job_seeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// ValidRole reports whether the role is one of the recognized values
func ValidRole(role string) bool {
	switch role {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// User represents a user account in Firestore
// @Description User account information
type User struct {
	ID        string    `json:"id" firestore:"-" example:"user@example.com"`
	Email     string    `json:"email" firestore:"email" example:"user@example.com"`
	Name      string    `json:"name" firestore:"name" example:"John Doe"`
	Password  string    `json:"-" firestore:"password"` // Hashed password, never sent to client
	Role      string    `json:"role" firestore:"role" example:"job_seeker"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty" example:"+91 98765 43210"`
	Location  string    `json:"location,omitempty" firestore:"location,omitempty" example:"Bengaluru"`
	Provider  string    `json:"provider" firestore:"provider" example:"email"` // "email" or "google"
	GoogleID  string    `json:"-" firestore:"googleId,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
