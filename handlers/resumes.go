package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
	"github.com/jobtatkal/backend/utils"
)

// maxResumeSize caps resume uploads at 10 MB
const maxResumeSize = 10 << 20

// ResumeRecordStore is the Firestore surface the resumes handler needs
type ResumeRecordStore interface {
	CreateResume(ctx context.Context, resume *models.Resume) error
	LatestResumeByUser(ctx context.Context, userID string) (*models.Resume, error)
	DeleteResume(ctx context.Context, id string) error
}

// ResumeObjectStore is the blob storage surface the resumes handler needs
type ResumeObjectStore interface {
	UploadResume(ctx context.Context, userID, fileName string, r io.Reader) (string, error)
	DownloadResume(ctx context.Context, objectName string) ([]byte, error)
	DeleteResume(ctx context.Context, objectName string) error
	GetSignedURL(objectName string, expiry time.Duration) (string, error)
}

// ResumesHandler handles resume upload and retrieval
type ResumesHandler struct {
	records   ResumeRecordStore
	objects   ResumeObjectStore
	extractor *utils.DocumentExtractor
}

// NewResumesHandler creates a new resumes handler
func NewResumesHandler(records ResumeRecordStore, objects ResumeObjectStore) *ResumesHandler {
	return &ResumesHandler{
		records:   records,
		objects:   objects,
		extractor: utils.NewDocumentExtractor(),
	}
}

// Upload stores a resume file for the authenticated user. Each user keeps
// one resume: a successful upload replaces the previous record and its
// stored object.
// @Summary Upload resume
// @Description Upload a resume file (PDF, DOC, DOCX, TXT). Raw text is extracted for later analysis; a previous upload is replaced.
// @Tags Resumes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume_file formData file true "Resume file"
// @Success 201 {object} models.ResumeUploadResponse "Resume uploaded"
// @Failure 400 {object} models.ErrorResponse "Invalid file"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resume [post]
func (h *ResumesHandler) Upload(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	file, header, err := c.Request.FormFile("resume_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Resume file is required",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	if header.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Resume file exceeds 10MB limit",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if !h.extractor.IsSupportedFormat(header.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Unsupported file format. Use PDF, DOC, DOCX or TXT.",
			Code:  http.StatusBadRequest,
		})
		return
	}

	previous, err := h.records.LatestResumeByUser(c.Request.Context(), claims.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[ResumesHandler] Failed to load previous resume: %v", err)
		previous = nil
	}

	// Extraction reads the file, so rewind before uploading
	rawText, err := h.extractor.ExtractText(file, header)
	if err != nil {
		log.Printf("[ResumesHandler] Failed to extract text from %s: %v", header.Filename, err)
		rawText = ""
	}
	if _, err := file.Seek(0, 0); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to read resume file",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	objectName, err := h.objects.UploadResume(c.Request.Context(), claims.UserID, header.Filename, file)
	if err != nil {
		log.Printf("[ResumesHandler] Failed to upload resume: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to upload resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	resume := &models.Resume{
		UserID:   claims.UserID,
		FileName: header.Filename,
		FileURL:  objectName,
		RawText:  rawText,
	}

	if err := h.records.CreateResume(c.Request.Context(), resume); err != nil {
		log.Printf("[ResumesHandler] Failed to save resume record: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to save resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	// Best effort: the replaced resume's object and record are dead weight
	if previous != nil {
		if err := h.objects.DeleteResume(c.Request.Context(), previous.FileURL); err != nil {
			log.Printf("[ResumesHandler] Failed to delete replaced resume object %s: %v", previous.FileURL, err)
		}
		if err := h.records.DeleteResume(c.Request.Context(), previous.ID); err != nil {
			log.Printf("[ResumesHandler] Failed to delete replaced resume record %s: %v", previous.ID, err)
		}
	}

	log.Printf("[ResumesHandler] Resume uploaded for %s: %s", claims.Email, resume.ID)
	c.JSON(http.StatusCreated, models.ResumeUploadResponse{
		Resume:  resume,
		Message: "Resume uploaded successfully",
	})
}

// GetLatest returns the authenticated user's most recent resume
// @Summary Get latest resume
// @Description Get the authenticated user's most recent resume record with a time-limited download URL
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Resume "Resume record"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "No resume uploaded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resume [get]
func (h *ResumesHandler) GetLatest(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	resume, err := h.records.LatestResumeByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "No resume uploaded yet",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[ResumesHandler] Failed to get resume: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	// Swap the object name for a short-lived download link
	if url, err := h.objects.GetSignedURL(resume.FileURL, 15*time.Minute); err == nil {
		resume.FileURL = url
	} else {
		log.Printf("[ResumesHandler] Failed to sign resume URL: %v", err)
	}

	// Raw text is for analysis, not for the client
	resume.RawText = ""

	c.JSON(http.StatusOK, resume)
}

// Download streams the authenticated user's stored resume file
// @Summary Download resume file
// @Description Download the authenticated user's most recent resume file
// @Tags Resumes
// @Produce octet-stream
// @Security BearerAuth
// @Success 200 {file} binary "Resume file"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "No resume uploaded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resume/file [get]
func (h *ResumesHandler) Download(c *gin.Context) {
	claims := auth.GetAuthClaims(c)

	resume, err := h.records.LatestResumeByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "No resume uploaded yet",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[ResumesHandler] Failed to get resume: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	data, err := h.objects.DownloadResume(c.Request.Context(), resume.FileURL)
	if err != nil {
		log.Printf("[ResumesHandler] Failed to download resume object %s: %v", resume.FileURL, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to download resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(resume.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.FileName))
	c.Data(http.StatusOK, contentType, data)
}
