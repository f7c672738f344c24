package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
)

// ApplicationsHandler handles job application requests
type ApplicationsHandler struct {
	firestoreClient *storage.FirestoreClient
}

// NewApplicationsHandler creates a new applications handler
func NewApplicationsHandler(firestoreClient *storage.FirestoreClient) *ApplicationsHandler {
	return &ApplicationsHandler{firestoreClient: firestoreClient}
}

// Apply submits an application to a job listing
// @Summary Apply to a job
// @Description Submit an application to an active job listing (job seeker only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body models.ApplyRequest false "Application request"
// @Success 201 {object} models.Application "Application submitted"
// @Failure 400 {object} models.ErrorResponse "Listing inactive"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 409 {object} models.ErrorResponse "Already applied"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /jobs/{id}/apply [post]
func (h *ApplicationsHandler) Apply(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	jobID := c.Param("id")

	// Body is optional; only reject malformed JSON
	var req models.ApplyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}
	}

	job, err := h.firestoreClient.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[ApplicationsHandler] Failed to get job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if !job.IsActive {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "This listing is no longer accepting applications",
			Code:  http.StatusBadRequest,
		})
		return
	}

	app := &models.Application{
		JobID:       jobID,
		UserID:      claims.UserID,
		CoverLetter: req.CoverLetter,
		// Denormalized for dashboards on both sides
		JobTitle:       job.Title,
		JobLocation:    job.Location,
		CompanyName:    job.CompanyName,
		RecruiterID:    job.PostedBy,
		ApplicantName:  claims.Name,
		ApplicantEmail: claims.Email,
	}

	if err := h.firestoreClient.CreateApplication(c.Request.Context(), app); err != nil {
		log.Printf("[ApplicationsHandler] Failed to create application: %v", err)
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "Application failed",
			Code:    http.StatusConflict,
			Details: err.Error(),
		})
		return
	}

	log.Printf("[ApplicationsHandler] %s applied to job %s", claims.Email, jobID)
	c.JSON(http.StatusCreated, app)
}

// ListMine returns the authenticated job seeker's applications
// @Summary List my applications
// @Description List the authenticated job seeker's applications, newest first
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Application "Applications"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /applications [get]
func (h *ApplicationsHandler) ListMine(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	apps, err := h.firestoreClient.ListApplicationsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("[ApplicationsHandler] Failed to list applications: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load applications",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}
	c.JSON(http.StatusOK, apps)
}

// ListForRecruiter returns applications to the recruiter's listings
// @Summary List received applications
// @Description List applications submitted to the authenticated recruiter's listings
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Application "Applications"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recruiter/applications [get]
func (h *ApplicationsHandler) ListForRecruiter(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	apps, err := h.firestoreClient.ListApplicationsByRecruiter(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("[ApplicationsHandler] Failed to list recruiter applications: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load applications",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}
	c.JSON(http.StatusOK, apps)
}

// UpdateStatus records a recruiter decision on an application
// @Summary Update application status
// @Description Mark an application as selected or rejected (owning recruiter only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body models.UpdateApplicationStatusRequest true "Status update"
// @Success 200 {object} models.Application "Updated application"
// @Failure 400 {object} models.ErrorResponse "Invalid status"
// @Failure 403 {object} models.ErrorResponse "Not the listing owner"
// @Failure 404 {object} models.ErrorResponse "Application not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recruiter/applications/{id}/status [patch]
func (h *ApplicationsHandler) UpdateStatus(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	appID := c.Param("id")

	var req models.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if req.Status != models.ApplicationStatusSelected && req.Status != models.ApplicationStatusRejected {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Status must be selected or rejected",
			Code:  http.StatusBadRequest,
		})
		return
	}

	app, err := h.firestoreClient.GetApplication(c.Request.Context(), appID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Application not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[ApplicationsHandler] Failed to get application: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load application",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if app.RecruiterID != claims.UserID && claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error: "You can only decide applications to your own listings",
			Code:  http.StatusForbidden,
		})
		return
	}

	if err := h.firestoreClient.UpdateApplicationStatus(c.Request.Context(), appID, req.Status); err != nil {
		log.Printf("[ApplicationsHandler] Failed to update status: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to update application",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	app.Status = req.Status
	log.Printf("[ApplicationsHandler] Application %s marked %s by %s", appID, req.Status, claims.Email)
	c.JSON(http.StatusOK, app)
}
