package models

import "time"

// Job type constants as shown on listing filters
const (
	JobTypeFullTime     = "Full Time"
	JobTypePartTime     = "Part Time"
	JobTypeWorkFromHome = "Work From Home"
	JobTypeContract     = "Contract"
	JobTypeInternship   = "Internship"
)

// Job represents a job listing in Firestore. Company and category fields
// are denormalized onto the document so listings render without joins.
// @Description Job listing
type Job struct {
	ID           string    `json:"id" firestore:"-"`
	Title        string    `json:"title" firestore:"title" example:"Backend Engineer"`
	Description  string    `json:"description" firestore:"description"`
	Requirements string    `json:"requirements" firestore:"requirements"`
	SalaryMin    int       `json:"salary_min" firestore:"salaryMin" example:"800000"`
	SalaryMax    int       `json:"salary_max" firestore:"salaryMax" example:"1500000"`
	Location     string    `json:"location" firestore:"location" example:"Bengaluru"`
	JobType      string    `json:"job_type" firestore:"jobType" example:"Full Time"`
	CompanyID    string    `json:"company_id,omitempty" firestore:"companyId,omitempty"`
	CompanyName  string    `json:"company_name,omitempty" firestore:"companyName,omitempty" example:"JobTatkal"`
	CompanyLogo  string    `json:"company_logo,omitempty" firestore:"companyLogo,omitempty"`
	CategoryID   string    `json:"category_id,omitempty" firestore:"categoryId,omitempty"`
	CategoryName string    `json:"category_name,omitempty" firestore:"categoryName,omitempty" example:"Engineering"`
	CategorySlug string    `json:"category_slug,omitempty" firestore:"categorySlug,omitempty" example:"engineering"`
	PostedBy     string    `json:"posted_by" firestore:"postedBy"`
	IsActive     bool      `json:"is_active" firestore:"isActive"`
	Skills       []string  `json:"skills" firestore:"skills"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Company represents a company page entry
// @Description Company directory entry
type Company struct {
	ID          string    `json:"id" firestore:"-"`
	Name        string    `json:"name" firestore:"name" example:"JobTatkal"`
	Logo        string    `json:"logo" firestore:"logo"`
	Website     string    `json:"website" firestore:"website"`
	Description string    `json:"description" firestore:"description"`
	Location    string    `json:"location" firestore:"location"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// Category represents a job category
// @Description Job category
type Category struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name" example:"Engineering"`
	Slug      string    `json:"slug" firestore:"slug" example:"engineering"`
	Icon      string    `json:"icon" firestore:"icon"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// JobUpsertRequest represents a recruiter creating or editing a listing
// @Description Job create/update request
type JobUpsertRequest struct {
	Title        string   `json:"title" binding:"required" example:"Backend Engineer"`
	Description  string   `json:"description" binding:"required"`
	Requirements string   `json:"requirements,omitempty"`
	SalaryMin    int      `json:"salary_min,omitempty" example:"800000"`
	SalaryMax    int      `json:"salary_max,omitempty" example:"1500000"`
	Location     string   `json:"location" binding:"required" example:"Bengaluru"`
	JobType      string   `json:"job_type" binding:"required" example:"Full Time"`
	CompanyID    string   `json:"company_id,omitempty"`
	CategoryID   string   `json:"category_id,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
