package models

import "time"

// Application status constants
const (
	ApplicationStatusApplied  = "applied"
	ApplicationStatusSelected = "selected"
	ApplicationStatusRejected = "rejected"
)

// Application represents a job application in Firestore
// @Description Job application
type Application struct {
	ID          string    `json:"id" firestore:"-"`
	JobID       string    `json:"job_id" firestore:"jobId"`
	UserID      string    `json:"user_id" firestore:"userId"`
	Status      string    `json:"status" firestore:"status" example:"applied"`
	CoverLetter string    `json:"cover_letter,omitempty" firestore:"coverLetter,omitempty"`
	// Denormalized for dashboard rendering
	JobTitle       string    `json:"job_title,omitempty" firestore:"jobTitle,omitempty"`
	JobLocation    string    `json:"job_location,omitempty" firestore:"jobLocation,omitempty"`
	CompanyName    string    `json:"company_name,omitempty" firestore:"companyName,omitempty"`
	RecruiterID    string    `json:"-" firestore:"recruiterId"`
	ApplicantName  string    `json:"applicant_name,omitempty" firestore:"applicantName,omitempty"`
	ApplicantEmail string    `json:"applicant_email,omitempty" firestore:"applicantEmail,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ApplyRequest represents a job seeker applying to a listing
// @Description Job application request
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter,omitempty"`
}

// UpdateApplicationStatusRequest represents a recruiter decision
// @Description Application status update request
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" example:"selected"`
}
