package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
)

// MetaHandler serves health and directory endpoints
type MetaHandler struct {
	firestoreClient *storage.FirestoreClient
	version         string
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(firestoreClient *storage.FirestoreClient, version string) *MetaHandler {
	return &MetaHandler{
		firestoreClient: firestoreClient,
		version:         version,
	}
}

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running
// @Tags Meta
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func (h *MetaHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ListCompanies returns the company directory
// @Summary List companies
// @Description List all companies ordered by name
// @Tags Meta
// @Produce json
// @Success 200 {array} models.Company "Companies"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /companies [get]
func (h *MetaHandler) ListCompanies(c *gin.Context) {
	companies, err := h.firestoreClient.ListCompanies(c.Request.Context())
	if err != nil {
		log.Printf("[MetaHandler] Failed to list companies: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load companies",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if companies == nil {
		companies = []models.Company{}
	}
	c.JSON(http.StatusOK, companies)
}

// ListCategories returns all job categories
// @Summary List categories
// @Description List all job categories
// @Tags Meta
// @Produce json
// @Success 200 {array} models.Category "Categories"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /categories [get]
func (h *MetaHandler) ListCategories(c *gin.Context) {
	categories, err := h.firestoreClient.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("[MetaHandler] Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load categories",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}
