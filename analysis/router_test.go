package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient records calls and replays a canned completion or error
type stubClient struct {
	calls      int
	lastSystem string
	lastUser   string
	content    string
	err        error
}

func (s *stubClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func TestAnalyzeTypedResults(t *testing.T) {
	tests := []struct {
		action  string
		content string
		check   func(t *testing.T, res *Result)
	}{
		{
			action:  "parse_resume",
			content: `{"skills":["Go","SQL"],"education":"BSc CS","experience":"5 years backend","name":"Jane Doe"}`,
			check: func(t *testing.T, res *Result) {
				require.NotNil(t, res.ParseResume)
				assert.Equal(t, []string{"Go", "SQL"}, res.ParseResume.Skills)
				assert.Equal(t, "BSc CS", res.ParseResume.Education)
				assert.Equal(t, "5 years backend", res.ParseResume.Experience)
				assert.Equal(t, "Jane Doe", res.ParseResume.Name)
			},
		},
		{
			action:  "match_jobs",
			content: `{"recommended_categories":["Engineering"],"suggested_titles":["Backend Engineer","SRE"],"match_score":87}`,
			check: func(t *testing.T, res *Result) {
				require.NotNil(t, res.MatchJobs)
				assert.Equal(t, []string{"Engineering"}, res.MatchJobs.RecommendedCategories)
				assert.Len(t, res.MatchJobs.SuggestedTitles, 2)
				assert.Equal(t, float64(87), res.MatchJobs.MatchScore)
			},
		},
		{
			action:  "spell_check",
			content: `{"corrections":[{"original":"recieve","corrected":"receive","context":"will recieve offers"}],"corrected_text":"will receive offers"}`,
			check: func(t *testing.T, res *Result) {
				require.NotNil(t, res.SpellCheck)
				require.Len(t, res.SpellCheck.Corrections, 1)
				assert.Equal(t, "recieve", res.SpellCheck.Corrections[0].Original)
				assert.Equal(t, "will receive offers", res.SpellCheck.CorrectedText)
			},
		},
		{
			action:  "grammar_check",
			content: `{"issues":[{"sentence":"Me did work","issue":"pronoun case","suggestion":"I did work"}],"improved_text":"I did work"}`,
			check: func(t *testing.T, res *Result) {
				require.NotNil(t, res.GrammarCheck)
				require.Len(t, res.GrammarCheck.Issues, 1)
				assert.Equal(t, "I did work", res.GrammarCheck.ImprovedText)
			},
		},
		{
			action:  "suggest_objective",
			content: `{"objectives":["A","B","C"]}`,
			check: func(t *testing.T, res *Result) {
				require.NotNil(t, res.Objectives)
				assert.Equal(t, []string{"A", "B", "C"}, res.Objectives.Objectives)
			},
		},
		{
			action:  "suggest_skills",
			content: `{"current_skills":["Go"],"suggested_skills":["Rust","K8s"],"trending_skills":["GenAI"]}`,
			check: func(t *testing.T, res *Result) {
				require.NotNil(t, res.Skills)
				assert.Equal(t, []string{"Rust", "K8s"}, res.Skills.SuggestedSkills)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			stub := &stubClient{content: tt.content}
			router := NewRouter(stub, 0)

			res, err := router.Analyze(context.Background(), Request{
				Action:     tt.action,
				ResumeText: "some resume text",
			})
			require.NoError(t, err)
			assert.Equal(t, 1, stub.calls)
			assert.False(t, res.Degraded)
			tt.check(t, res)
		})
	}
}

func TestAnalyzeInvalidActionNoOutboundCall(t *testing.T) {
	stub := &stubClient{content: `{}`}
	router := NewRouter(stub, 0)

	_, err := router.Analyze(context.Background(), Request{
		Action:     "translate_resume",
		ResumeText: "text",
	})

	require.Error(t, err)
	assert.Equal(t, KindInvalidAction, KindOf(err))
	assert.Equal(t, 0, stub.calls, "invalid action must fail before any upstream call")
}

func TestAnalyzeEmptyInputNoOutboundCall(t *testing.T) {
	stub := &stubClient{content: `{}`}
	router := NewRouter(stub, 0)

	_, err := router.Analyze(context.Background(), Request{Action: "match_jobs"})

	require.Error(t, err)
	assert.Equal(t, 0, stub.calls)
}

func TestAnalyzeDecodeDegradesToRaw(t *testing.T) {
	const chatty = "Sure, here's your analysis: you look great!"
	stub := &stubClient{content: chatty}
	router := NewRouter(stub, 0)

	res, err := router.Analyze(context.Background(), Request{
		Action: "suggest_skills",
		Text:   "Go, SQL",
	})

	require.NoError(t, err, "decode failure is degradation, not an error")
	assert.True(t, res.Degraded)
	assert.Equal(t, chatty, res.Raw)
	assert.Equal(t, RawResult{Raw: chatty}, res.Payload())
}

func TestAnalyzeUpstreamErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"rate limited", RateLimitedError(nil), KindRateLimited},
		{"quota exhausted", QuotaExhaustedError(nil), KindQuotaExhausted},
		{"transport", TransportError(errors.New("connection refused")), KindTransport},
		{"plain error wrapped as transport", errors.New("boom"), KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{err: tt.err}
			router := NewRouter(stub, 0)

			_, err := router.Analyze(context.Background(), Request{
				Action: "parse_resume",
				Text:   "resume",
			})
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestAnalyzeFallbackTextReachesPrompt(t *testing.T) {
	stub := &stubClient{content: `{}`}
	router := NewRouter(stub, 0)

	_, err := router.Analyze(context.Background(), Request{
		Action: "match_jobs",
		Text:   "Skills: Go, SQL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Skills: Skills: Go, SQL", stub.lastUser)
	assert.Equal(t, SystemPrompt(ActionMatchJobs), stub.lastSystem)
}

func TestAnalyzeResumeTextPreferredOverText(t *testing.T) {
	stub := &stubClient{content: `{}`}
	router := NewRouter(stub, 0)

	_, err := router.Analyze(context.Background(), Request{
		Action:     "spell_check",
		Text:       "secondary",
		ResumeText: "primary resume text",
	})
	require.NoError(t, err)
	assert.Contains(t, stub.lastUser, "primary resume text")
	assert.NotContains(t, stub.lastUser, "secondary")
}

func TestAnalyzeObjectivesEndToEnd(t *testing.T) {
	stub := &stubClient{content: `{"objectives":["A","B","C"]}`}
	router := NewRouter(stub, 0)

	res, err := router.Analyze(context.Background(), Request{
		Action: "suggest_objective",
		Text:   "5 years backend engineering, Go and distributed systems",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Objectives)
	assert.Equal(t, []string{"A", "B", "C"}, res.Objectives.Objectives)
	assert.Contains(t, stub.lastUser, "5 years backend engineering, Go and distributed systems")
}

func TestAnalyzeSkillsNoSilentTruncation(t *testing.T) {
	content := `{"current_skills":["Go"],"suggested_skills":["a","b","c","d","e","f","g","h","i","j","k","l"],"trending_skills":["x"]}`
	stub := &stubClient{content: content}
	router := NewRouter(stub, 0)

	res, err := router.Analyze(context.Background(), Request{
		Action: "suggest_skills",
		Text:   "Go",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Skills)
	assert.Len(t, res.Skills.SuggestedSkills, 12, "cardinality hint is advisory, never enforced")
}

func TestAnalyzeMatchScorePassedThroughUnvalidated(t *testing.T) {
	stub := &stubClient{content: `{"recommended_categories":[],"suggested_titles":[],"match_score":250}`}
	router := NewRouter(stub, 0)

	res, err := router.Analyze(context.Background(), Request{Action: "match_jobs", Text: "Go"})
	require.NoError(t, err)
	assert.Equal(t, float64(250), res.MatchJobs.MatchScore)
}

func TestAnalyzeTruncatesOversizedInput(t *testing.T) {
	stub := &stubClient{content: `{}`}
	router := NewRouter(stub, 100)

	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := router.Analyze(context.Background(), Request{
		Action:     "grammar_check",
		ResumeText: string(long),
	})
	require.NoError(t, err)
	assert.Contains(t, stub.lastUser, "[truncated]")
	assert.Less(t, len(stub.lastUser), 200)
}

func TestAnalyzeMarkdownFencedJSONStillDecodes(t *testing.T) {
	stub := &stubClient{content: "```json\n{\"objectives\":[\"A\",\"B\",\"C\"]}\n```"}
	router := NewRouter(stub, 0)

	res, err := router.Analyze(context.Background(), Request{Action: "suggest_objective", Text: "Go"})
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Equal(t, []string{"A", "B", "C"}, res.Objectives.Objectives)
}
