package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
)

// AdminHandler handles administrative user management
type AdminHandler struct {
	firestoreClient *storage.FirestoreClient
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(firestoreClient *storage.FirestoreClient) *AdminHandler {
	return &AdminHandler{firestoreClient: firestoreClient}
}

// ListUsers returns all registered users
// @Summary List users
// @Description List all registered users, newest first (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User "Users"
// @Failure 403 {object} models.ErrorResponse "Insufficient permissions"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.firestoreClient.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("[AdminHandler] Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load users",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserRole changes a user's role
// @Summary Update user role
// @Description Change a user's role (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User email"
// @Param request body models.UpdateRoleRequest true "Role update"
// @Success 200 {object} models.ProfileResponse "Updated user"
// @Failure 400 {object} models.ErrorResponse "Invalid role"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	email := c.Param("id")

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Role must be job_seeker, recruiter or admin",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if _, err := h.firestoreClient.GetUserByEmail(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "User not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	if err := h.firestoreClient.UpdateUserRole(c.Request.Context(), email, req.Role); err != nil {
		log.Printf("[AdminHandler] Failed to update role: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to update role",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	user, err := h.firestoreClient.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "User not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	admin := auth.GetAuthClaims(c)
	log.Printf("[AdminHandler] Role of %s set to %s by %s", email, req.Role, admin.Email)
	c.JSON(http.StatusOK, models.ProfileResponse{
		User:    user,
		Message: "Role updated successfully",
	})
}

// DeleteUser removes a user account
// @Summary Delete user
// @Description Delete a user account (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User email"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 400 {object} models.ErrorResponse "Cannot delete own account"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	email := c.Param("id")
	admin := auth.GetAuthClaims(c)

	if admin.Email == email {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "You cannot delete your own account",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if _, err := h.firestoreClient.GetUserByEmail(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "User not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	if err := h.firestoreClient.DeleteUser(c.Request.Context(), email); err != nil {
		log.Printf("[AdminHandler] Failed to delete user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to delete user",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[AdminHandler] User %s deleted by %s", email, admin.Email)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
