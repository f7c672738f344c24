package analysis

import "fmt"

// Action identifies the requested analysis mode
type Action string

const (
	ActionParseResume      Action = "parse_resume"
	ActionMatchJobs        Action = "match_jobs"
	ActionSpellCheck       Action = "spell_check"
	ActionGrammarCheck     Action = "grammar_check"
	ActionSuggestObjective Action = "suggest_objective"
	ActionSuggestSkills    Action = "suggest_skills"
)

// Actions lists every recognized action
var Actions = []Action{
	ActionParseResume,
	ActionMatchJobs,
	ActionSpellCheck,
	ActionGrammarCheck,
	ActionSuggestObjective,
	ActionSuggestSkills,
}

// ParseAction validates an action string from a request
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if !a.Valid() {
		return "", &Error{
			Kind:    KindInvalidAction,
			Message: fmt.Sprintf("invalid action %q", raw),
		}
	}
	return a, nil
}

// Valid reports whether the action is one of the recognized tags
func (a Action) Valid() bool {
	switch a {
	case ActionParseResume, ActionMatchJobs, ActionSpellCheck,
		ActionGrammarCheck, ActionSuggestObjective, ActionSuggestSkills:
		return true
	}
	return false
}
