package analysis

import (
	"encoding/json"
	"strings"
)

// ParseResumeResult is the structured output of the parse_resume action
type ParseResumeResult struct {
	Skills     []string `json:"skills"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	Name       string   `json:"name,omitempty"`
}

// MatchJobsResult is the structured output of the match_jobs action
type MatchJobsResult struct {
	RecommendedCategories []string `json:"recommended_categories"`
	SuggestedTitles       []string `json:"suggested_titles"`
	MatchScore            float64  `json:"match_score"` // 1-100, passed through unvalidated
}

// Correction is a single spelling fix
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Context   string `json:"context"`
}

// SpellCheckResult is the structured output of the spell_check action
type SpellCheckResult struct {
	Corrections   []Correction `json:"corrections"`
	CorrectedText string       `json:"corrected_text"`
}

// GrammarIssue is a single grammar finding
type GrammarIssue struct {
	Sentence   string `json:"sentence"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// GrammarCheckResult is the structured output of the grammar_check action
type GrammarCheckResult struct {
	Issues       []GrammarIssue `json:"issues"`
	ImprovedText string         `json:"improved_text"`
}

// ObjectiveResult is the structured output of the suggest_objective action
type ObjectiveResult struct {
	Objectives []string `json:"objectives"`
}

// SkillsResult is the structured output of the suggest_skills action.
// The cardinality hints in the prompt (10 suggested, 5 trending) are
// advisory to the model; the router passes through whatever comes back.
type SkillsResult struct {
	CurrentSkills   []string `json:"current_skills"`
	SuggestedSkills []string `json:"suggested_skills"`
	TrendingSkills  []string `json:"trending_skills"`
}

// RawResult is the decode-degradation fallback: the model's output could
// not be parsed into the expected shape, so it is returned as opaque text
type RawResult struct {
	Raw string `json:"raw"`
}

// Result is the tagged union returned by Analyze. Exactly one variant is
// set, matching the requested action, unless Degraded is true in which
// case only Raw carries the model output.
type Result struct {
	Action   Action
	Degraded bool

	ParseResume  *ParseResumeResult
	MatchJobs    *MatchJobsResult
	SpellCheck   *SpellCheckResult
	GrammarCheck *GrammarCheckResult
	Objectives   *ObjectiveResult
	Skills       *SkillsResult
	Raw          string
}

// Payload returns the JSON-serializable variant for the action, suitable
// as an HTTP response body
func (r *Result) Payload() interface{} {
	if r.Degraded {
		return RawResult{Raw: r.Raw}
	}
	switch r.Action {
	case ActionParseResume:
		return r.ParseResume
	case ActionMatchJobs:
		return r.MatchJobs
	case ActionSpellCheck:
		return r.SpellCheck
	case ActionGrammarCheck:
		return r.GrammarCheck
	case ActionSuggestObjective:
		return r.Objectives
	case ActionSuggestSkills:
		return r.Skills
	}
	return RawResult{Raw: r.Raw}
}

// decodeResult attempts strict JSON decoding of the completion text into
// the shape associated with the action. Decode failure is not an error:
// the model's output is never lost, only its structure, so the raw text
// comes back in the fallback variant.
func decodeResult(a Action, content string) *Result {
	res := &Result{Action: a}
	text := cleanJSON(content)

	var err error
	switch a {
	case ActionParseResume:
		v := &ParseResumeResult{}
		if err = json.Unmarshal([]byte(text), v); err == nil {
			res.ParseResume = v
		}
	case ActionMatchJobs:
		v := &MatchJobsResult{}
		if err = json.Unmarshal([]byte(text), v); err == nil {
			res.MatchJobs = v
		}
	case ActionSpellCheck:
		v := &SpellCheckResult{}
		if err = json.Unmarshal([]byte(text), v); err == nil {
			res.SpellCheck = v
		}
	case ActionGrammarCheck:
		v := &GrammarCheckResult{}
		if err = json.Unmarshal([]byte(text), v); err == nil {
			res.GrammarCheck = v
		}
	case ActionSuggestObjective:
		v := &ObjectiveResult{}
		if err = json.Unmarshal([]byte(text), v); err == nil {
			res.Objectives = v
		}
	case ActionSuggestSkills:
		v := &SkillsResult{}
		if err = json.Unmarshal([]byte(text), v); err == nil {
			res.Skills = v
		}
	}

	if err != nil {
		res.Degraded = true
		res.Raw = content
	}
	return res
}

// cleanJSON strips markdown code fences some models wrap around JSON
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
