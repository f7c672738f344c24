package models

import "time"

// Resume represents an uploaded resume record in Firestore. The parsed_*
// fields are filled in after a parse_resume analysis succeeds.
// @Description Uploaded resume record
type Resume struct {
	ID               string    `json:"id" firestore:"-"`
	UserID           string    `json:"user_id" firestore:"userId"`
	FileName         string    `json:"file_name" firestore:"fileName" example:"resume.pdf"`
	FileURL          string    `json:"file_url" firestore:"fileUrl"`
	ParsedSkills     []string  `json:"parsed_skills" firestore:"parsedSkills"`
	ParsedEducation  string    `json:"parsed_education" firestore:"parsedEducation"`
	ParsedExperience string    `json:"parsed_experience" firestore:"parsedExperience"`
	RawText          string    `json:"raw_text,omitempty" firestore:"rawText,omitempty"`
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt"`
}

// ResumeUploadResponse represents the result of a resume upload
// @Description Resume upload response
type ResumeUploadResponse struct {
	Resume  *Resume `json:"resume"`
	Message string  `json:"message" example:"Resume uploaded successfully"`
}
