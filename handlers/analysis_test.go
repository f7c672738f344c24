package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtatkal/backend/analysis"
	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
)

type stubCompletion struct {
	calls      int
	lastSystem string
	lastUser   string
	content    string
	err        error
}

func (s *stubCompletion) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

type stubStore struct {
	resume     *models.Resume
	resumeErr  error
	jobs       []models.Job
	jobsErr    error
	persistID  string
	persistSet []string
}

func (s *stubStore) LatestResumeByUser(_ context.Context, _ string) (*models.Resume, error) {
	if s.resumeErr != nil {
		return nil, s.resumeErr
	}
	return s.resume, nil
}

func (s *stubStore) UpdateResumeParsed(_ context.Context, id string, skills []string, _, _ string) error {
	s.persistID = id
	s.persistSet = skills
	return nil
}

func (s *stubStore) ListActiveJobs(_ context.Context, _ int) ([]models.Job, error) {
	return s.jobs, s.jobsErr
}

func newAnalysisRouter(client analysis.CompletionClient, store AnalysisStore, claims *auth.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalysisHandler(analysis.NewRouter(client, 0), store)
	r.POST("/api/ai/resume", func(c *gin.Context) {
		if claims != nil {
			c.Set(auth.AuthClaimsKey, claims)
		}
		c.Next()
	}, h.Analyze)
	return r
}

func postAnalysis(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/resume", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeTypedResult(t *testing.T) {
	client := &stubCompletion{content: `{"objectives": ["Objective A", "Objective B"]}`}
	r := newAnalysisRouter(client, &stubStore{}, nil)

	w := postAnalysis(t, r, analysis.Request{
		Action: "suggest_objective",
		Text:   "Backend engineer, five years in distributed systems",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, client.calls)

	// The body is the result object itself, not a wrapper around it
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["objectives"], 2)
	assert.NotContains(t, resp, "action")
	assert.NotContains(t, resp, "result")
}

func TestAnalyzeInvalidAction(t *testing.T) {
	client := &stubCompletion{content: `{}`}
	r := newAnalysisRouter(client, &stubStore{}, nil)

	w := postAnalysis(t, r, analysis.Request{Action: "summarize", Text: "something"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, client.calls, "invalid action must not reach the model")
}

func TestAnalyzeMissingTextAnonymous(t *testing.T) {
	client := &stubCompletion{content: `{}`}
	r := newAnalysisRouter(client, &stubStore{resumeErr: storage.ErrNotFound}, nil)

	w := postAnalysis(t, r, analysis.Request{Action: "spell_check"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, client.calls)
}

func TestAnalyzeUpstreamErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"rate limited", analysis.RateLimitedError(fmt.Errorf("429")), http.StatusTooManyRequests},
		{"quota exhausted", analysis.QuotaExhaustedError(fmt.Errorf("402")), http.StatusPaymentRequired},
		{"transport", analysis.TransportError(fmt.Errorf("boom")), http.StatusBadGateway},
		{"unclassified", fmt.Errorf("connection reset"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAnalysisRouter(&stubCompletion{err: tt.err}, &stubStore{}, nil)

			w := postAnalysis(t, r, analysis.Request{Action: "grammar_check", Text: "Some text."})

			assert.Equal(t, tt.status, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestAnalyzeUsesStoredResumeText(t *testing.T) {
	client := &stubCompletion{content: `{"skills": ["Go"], "education": "BSc", "experience": "5 years"}`}
	store := &stubStore{resume: &models.Resume{
		ID:      "res-1",
		UserID:  "user@example.com",
		RawText: "John Doe. Backend engineer with Go and SQL.",
	}}
	claims := &auth.Claims{UserID: "user@example.com", Email: "user@example.com"}
	r := newAnalysisRouter(client, store, claims)

	w := postAnalysis(t, r, analysis.Request{Action: "parse_resume"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, client.lastUser, "John Doe. Backend engineer with Go and SQL.")
	assert.Equal(t, "res-1", store.persistID, "parse output should be written back to the stored resume")
	assert.Equal(t, []string{"Go"}, store.persistSet)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []interface{}{"Go"}, resp["skills"])
	assert.Equal(t, "BSc", resp["education"])
}

func TestAnalyzeFallsBackToSynthesizedSummary(t *testing.T) {
	client := &stubCompletion{content: `{"corrections": [], "corrected_text": "fine"}`}
	store := &stubStore{resume: &models.Resume{
		ID:           "res-2",
		FileName:     "cv.pdf",
		ParsedSkills: []string{"Go", "SQL"},
		RawText:      "",
	}}
	claims := &auth.Claims{UserID: "user@example.com", Email: "user@example.com"}
	r := newAnalysisRouter(client, store, claims)

	w := postAnalysis(t, r, analysis.Request{Action: "spell_check"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, client.lastUser, "Resume: cv.pdf. Skills: Go, SQL")
}

func TestAnalyzeInlineTextWinsOverStoredResume(t *testing.T) {
	client := &stubCompletion{content: `{"corrections": [], "corrected_text": "fine"}`}
	store := &stubStore{resume: &models.Resume{ID: "res-3", RawText: "stored text"}}
	claims := &auth.Claims{UserID: "user@example.com", Email: "user@example.com"}
	r := newAnalysisRouter(client, store, claims)

	w := postAnalysis(t, r, analysis.Request{Action: "spell_check", Text: "inline text"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, client.lastUser, "inline text")
	assert.NotContains(t, client.lastUser, "stored text")
}

func TestAnalyzeMatchJobsAttachesListings(t *testing.T) {
	now := time.Now()
	var listings []models.Job
	for i := 0; i < 8; i++ {
		cat := "Design"
		if i%2 == 0 {
			cat = "Engineering"
		}
		listings = append(listings, models.Job{
			ID:           fmt.Sprintf("job-%d", i),
			Title:        fmt.Sprintf("Role %d", i),
			CategoryName: cat,
			CreatedAt:    now.Add(-time.Duration(i) * time.Hour),
		})
	}

	client := &stubCompletion{content: `{"recommended_categories": ["engineering"], "suggested_titles": ["Backend Engineer"], "match_score": 82}`}
	store := &stubStore{jobs: listings}
	r := newAnalysisRouter(client, store, nil)

	w := postAnalysis(t, r, analysis.Request{Action: "match_jobs", Text: "Go, SQL"})

	require.Equal(t, http.StatusOK, w.Code)

	// Listings merge into the match payload alongside its own fields
	var resp struct {
		RecommendedCategories []string     `json:"recommended_categories"`
		MatchScore            float64      `json:"match_score"`
		MatchedJobs           []models.Job `json:"matched_jobs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"engineering"}, resp.RecommendedCategories)
	assert.Equal(t, float64(82), resp.MatchScore)
	require.Len(t, resp.MatchedJobs, 6)
	// Category matches come first, case-insensitively
	for i := 0; i < 4; i++ {
		assert.Equal(t, "Engineering", resp.MatchedJobs[i].CategoryName)
	}
}

func TestAnalyzeDegradedResponse(t *testing.T) {
	client := &stubCompletion{content: "Sure, here's your analysis: looks good!"}
	store := &stubStore{resume: &models.Resume{ID: "res-4", RawText: "text"}}
	claims := &auth.Claims{UserID: "user@example.com", Email: "user@example.com"}
	r := newAnalysisRouter(client, store, claims)

	w := postAnalysis(t, r, analysis.Request{Action: "parse_resume"})

	require.Equal(t, http.StatusOK, w.Code)

	// Undecodable output comes back as a bare {raw} object
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sure, here's your analysis: looks good!", resp["raw"])
	assert.Len(t, resp, 1)
	assert.Empty(t, store.persistID, "degraded output must not be persisted")
}
