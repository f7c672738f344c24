package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/jobs"
	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
)

// JobsHandler handles job listing requests
type JobsHandler struct {
	firestoreClient *storage.FirestoreClient
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(firestoreClient *storage.FirestoreClient) *JobsHandler {
	return &JobsHandler{firestoreClient: firestoreClient}
}

// ListJobs returns active job listings with optional filtering
// @Summary Browse job listings
// @Description List active jobs filtered by search query, job type, category and sort order
// @Tags Jobs
// @Produce json
// @Param q query string false "Search text matched against title, company, skills and location"
// @Param type query string false "Job type filter" Enums(Full Time, Part Time, Work From Home, Contract, Internship)
// @Param category query string false "Category slug filter"
// @Param sort query string false "Sort order" Enums(recent, salary)
// @Success 200 {object} models.JobListResponse "Job listings"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /jobs [get]
func (h *JobsHandler) ListJobs(c *gin.Context) {
	all, err := h.firestoreClient.ListActiveJobs(c.Request.Context(), 0)
	if err != nil {
		log.Printf("[JobsHandler] Failed to list jobs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load job listings",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	filtered := jobs.Apply(all, jobs.Filter{
		Query:        c.Query("q"),
		JobType:      c.Query("type"),
		CategorySlug: c.Query("category"),
		SortBy:       c.Query("sort"),
	})

	c.JSON(http.StatusOK, models.JobListResponse{
		Jobs:  filtered,
		Total: len(filtered),
	})
}

// GetJob returns a single job listing
// @Summary Get job details
// @Description Get a single job listing by ID
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job "Job listing"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /jobs/{id} [get]
func (h *JobsHandler) GetJob(c *gin.Context) {
	job, err := h.firestoreClient.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[JobsHandler] Failed to get job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob creates a new job listing for the authenticated recruiter
// @Summary Create job listing
// @Description Create a new job listing (recruiter only)
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.JobUpsertRequest true "Job create request"
// @Success 201 {object} models.Job "Created job"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Insufficient permissions"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recruiter/jobs [post]
func (h *JobsHandler) CreateJob(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	var req models.JobUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	job := h.jobFromRequest(c, &req, claims.UserID)
	if job == nil {
		return
	}

	if err := h.firestoreClient.CreateJob(c.Request.Context(), job); err != nil {
		log.Printf("[JobsHandler] Failed to create job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to create job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[JobsHandler] Job created: %s by %s", job.ID, claims.Email)
	c.JSON(http.StatusCreated, job)
}

// UpdateJob updates a job listing owned by the authenticated recruiter
// @Summary Update job listing
// @Description Update an existing job listing (owning recruiter only)
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body models.JobUpsertRequest true "Job update request"
// @Success 200 {object} models.Job "Updated job"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 403 {object} models.ErrorResponse "Not the listing owner"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recruiter/jobs/{id} [put]
func (h *JobsHandler) UpdateJob(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	jobID := c.Param("id")

	existing, err := h.firestoreClient.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[JobsHandler] Failed to get job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if existing.PostedBy != claims.UserID && claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error: "You can only edit your own listings",
			Code:  http.StatusForbidden,
		})
		return
	}

	var req models.JobUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	job := h.jobFromRequest(c, &req, existing.PostedBy)
	if job == nil {
		return
	}
	job.CreatedAt = existing.CreatedAt

	if err := h.firestoreClient.UpdateJob(c.Request.Context(), jobID, job); err != nil {
		log.Printf("[JobsHandler] Failed to update job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to update job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[JobsHandler] Job updated: %s by %s", jobID, claims.Email)
	c.JSON(http.StatusOK, job)
}

// DeleteJob removes a job listing owned by the authenticated recruiter
// @Summary Delete job listing
// @Description Delete a job listing (owning recruiter only)
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 403 {object} models.ErrorResponse "Not the listing owner"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recruiter/jobs/{id} [delete]
func (h *JobsHandler) DeleteJob(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	jobID := c.Param("id")

	existing, err := h.firestoreClient.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[JobsHandler] Failed to get job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if existing.PostedBy != claims.UserID && claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error: "You can only delete your own listings",
			Code:  http.StatusForbidden,
		})
		return
	}

	if err := h.firestoreClient.DeleteJob(c.Request.Context(), jobID); err != nil {
		log.Printf("[JobsHandler] Failed to delete job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to delete job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[JobsHandler] Job deleted: %s by %s", jobID, claims.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

// ListRecruiterJobs returns the authenticated recruiter's listings
// @Summary List recruiter's jobs
// @Description List all job listings posted by the authenticated recruiter
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.JobListResponse "Job listings"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recruiter/jobs [get]
func (h *JobsHandler) ListRecruiterJobs(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	listings, err := h.firestoreClient.ListJobsByRecruiter(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("[JobsHandler] Failed to list recruiter jobs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load job listings",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.JobListResponse{
		Jobs:  listings,
		Total: len(listings),
	})
}

// jobFromRequest builds a Job from an upsert request, denormalizing company
// and category data onto the document. Writes an error response and returns
// nil when a referenced company or category does not exist.
func (h *JobsHandler) jobFromRequest(c *gin.Context, req *models.JobUpsertRequest, postedBy string) *models.Job {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	job := &models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Location:     req.Location,
		JobType:      req.JobType,
		Skills:       req.Skills,
		PostedBy:     postedBy,
		IsActive:     isActive,
	}

	if req.CompanyID != "" {
		company, err := h.firestoreClient.GetCompany(c.Request.Context(), req.CompanyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Unknown company",
				Code:  http.StatusBadRequest,
			})
			return nil
		}
		job.CompanyID = company.ID
		job.CompanyName = company.Name
		job.CompanyLogo = company.Logo
	}

	if req.CategoryID != "" {
		category, err := h.firestoreClient.GetCategory(c.Request.Context(), req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Unknown category",
				Code:  http.StatusBadRequest,
			})
			return nil
		}
		job.CategoryID = category.ID
		job.CategoryName = category.Name
		job.CategorySlug = category.Slug
	}

	return job
}
