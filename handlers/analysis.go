package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobtatkal/backend/analysis"
	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/models"
)

// matchedJobsLimit caps the listings attached to a match_jobs response
const matchedJobsLimit = 6

// AnalysisStore is the slice of storage the analysis handler needs:
// loading the caller's stored resume, persisting parse results back onto
// it, and pulling active listings to pair with job-match output.
type AnalysisStore interface {
	LatestResumeByUser(ctx context.Context, userID string) (*models.Resume, error)
	UpdateResumeParsed(ctx context.Context, id string, skills []string, education, experience string) error
	ListActiveJobs(ctx context.Context, limit int) ([]models.Job, error)
}

// AnalysisHandler handles AI resume analysis requests
type AnalysisHandler struct {
	router *analysis.Router
	store  AnalysisStore
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(router *analysis.Router, store AnalysisStore) *AnalysisHandler {
	return &AnalysisHandler{
		router: router,
		store:  store,
	}
}

// matchJobsResponse is the match_jobs result with live listings merged in
type matchJobsResponse struct {
	analysis.MatchJobsResult
	MatchedJobs []models.Job `json:"matched_jobs,omitempty"`
}

// Analyze runs one AI analysis action over resume text. The success body
// is the action's result shape itself (e.g. {skills, education, experience}
// for parse_resume), or {raw} when the model reply could not be decoded.
// @Summary Analyze resume text
// @Description Run one analysis action (parse_resume, match_jobs, spell_check, grammar_check, suggest_objective, suggest_skills) over the given text. The response body is the action-specific result object, or {raw} when the reply could not be decoded. Authenticated callers may omit the text to analyze their latest uploaded resume.
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body analysis.Request true "Analysis request"
// @Success 200 {object} map[string]interface{} "Action-specific result"
// @Failure 400 {object} models.ErrorResponse "Invalid action or missing text"
// @Failure 402 {object} models.ErrorResponse "AI credits exhausted"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} models.ErrorResponse "AI gateway error"
// @Router /ai/resume [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	// Authenticated callers with no inline text fall back to their
	// stored resume: raw text when extraction captured it, otherwise a
	// one-line summary synthesized from the upload record.
	claims := auth.GetAuthClaims(c)
	var storedResume *models.Resume
	if claims != nil && strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.ResumeText) == "" {
		resume, err := h.store.LatestResumeByUser(c.Request.Context(), claims.UserID)
		if err == nil {
			storedResume = resume
			req.ResumeText = resume.RawText
			req.FallbackText = analysis.SynthesizeResumeSummary(resume.FileName, resume.ParsedSkills)
		}
	}

	result, err := h.router.Analyze(c.Request.Context(), req)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	if !result.Degraded {
		switch result.Action {
		case analysis.ActionParseResume:
			h.persistParsedResume(c.Request.Context(), storedResume, result.ParseResume)
		case analysis.ActionMatchJobs:
			c.JSON(http.StatusOK, matchJobsResponse{
				MatchJobsResult: *result.MatchJobs,
				MatchedJobs:     h.matchedJobs(c.Request.Context(), result.MatchJobs),
			})
			return
		}
	}

	c.JSON(http.StatusOK, result.Payload())
}

func (h *AnalysisHandler) writeAnalysisError(c *gin.Context, err error) {
	var status int
	switch analysis.KindOf(err) {
	case analysis.KindInvalidAction:
		status = http.StatusBadRequest
	case analysis.KindRateLimited:
		status = http.StatusTooManyRequests
	case analysis.KindQuotaExhausted:
		status = http.StatusPaymentRequired
	default:
		status = http.StatusBadGateway
	}

	c.JSON(status, models.ErrorResponse{
		Error: err.Error(),
		Code:  status,
	})
}

// persistParsedResume writes parse_resume output back onto the stored
// resume record. Best effort: analysis output already went to the caller.
func (h *AnalysisHandler) persistParsedResume(ctx context.Context, resume *models.Resume, parsed *analysis.ParseResumeResult) {
	if resume == nil || parsed == nil {
		return
	}
	if err := h.store.UpdateResumeParsed(ctx, resume.ID, parsed.Skills, parsed.Education, parsed.Experience); err != nil {
		log.Printf("[AnalysisHandler] Failed to persist parsed resume %s: %v", resume.ID, err)
	}
}

// matchedJobs pairs match_jobs output with live listings: jobs in a
// recommended category first, newest listings to fill the remainder.
func (h *AnalysisHandler) matchedJobs(ctx context.Context, match *analysis.MatchJobsResult) []models.Job {
	if match == nil {
		return nil
	}

	all, err := h.store.ListActiveJobs(ctx, 0)
	if err != nil {
		log.Printf("[AnalysisHandler] Failed to load listings for match: %v", err)
		return nil
	}

	recommended := make(map[string]bool, len(match.RecommendedCategories))
	for _, cat := range match.RecommendedCategories {
		recommended[strings.ToLower(cat)] = true
	}

	var picked []models.Job
	seen := make(map[string]bool)
	for _, job := range all {
		if len(picked) == matchedJobsLimit {
			return picked
		}
		if recommended[strings.ToLower(job.CategoryName)] {
			picked = append(picked, job)
			seen[job.ID] = true
		}
	}
	for _, job := range all {
		if len(picked) == matchedJobsLimit {
			break
		}
		if !seen[job.ID] {
			picked = append(picked, job)
		}
	}
	return picked
}
