package analysis

import "fmt"

// promptTemplate pairs a fixed system prompt with a builder for the user
// message. One template per action, resolved statically and never mutated
// at runtime. The system prompts encode the structured-output contract
// (field names, types, cardinality) that downstream consumers rely on,
// so they must not be reworded casually.
type promptTemplate struct {
	system string
	user   func(input string) string
}

var templates = map[Action]promptTemplate{
	ActionParseResume: {
		system: `You are a resume parser. Extract structured information from the resume text provided. Return a JSON object with these fields:
- skills: array of skill strings found in the resume
- education: string summarizing education background
- experience: string summarizing work experience
- name: string of the candidate's name if found
Return ONLY valid JSON, no markdown.`,
		user: func(input string) string {
			return fmt.Sprintf("Parse this resume:\n\n%s", input)
		},
	},
	ActionMatchJobs: {
		system: `You are a job matching AI. Given a list of skills, suggest which job categories and types of roles would be best suited. Return a JSON object with:
- recommended_categories: array of strings (from: "Work From Home", "Full Time", "Part Time", "Engineering", "Data Science", "Design", "Marketing", "Sales")
- suggested_titles: array of 5 job title strings that match the skills
- match_score: number 1-100 indicating overall employability
Return ONLY valid JSON, no markdown.`,
		user: func(input string) string {
			return fmt.Sprintf("Skills: %s", input)
		},
	},
	ActionSpellCheck: {
		system: `You are a spelling and grammar checker for resumes. Find all spelling errors and return a JSON object with:
- corrections: array of objects with { original, corrected, context }
- corrected_text: the full text with all corrections applied
Return ONLY valid JSON, no markdown.`,
		user: func(input string) string {
			return fmt.Sprintf("Check this resume text:\n\n%s", input)
		},
	},
	ActionGrammarCheck: {
		system: `You are a grammar expert for professional documents. Analyze the text and return a JSON object with:
- issues: array of objects with { sentence, issue, suggestion }
- improved_text: the full text with grammar improvements
Return ONLY valid JSON, no markdown.`,
		user: func(input string) string {
			return fmt.Sprintf("Check grammar:\n\n%s", input)
		},
	},
	ActionSuggestObjective: {
		system: `You are a career advisor. Based on the skills and experience provided, suggest 3 professional profile objectives. Return a JSON object with:
- objectives: array of 3 strings, each a concise profile objective (2-3 sentences)
Return ONLY valid JSON, no markdown.`,
		user: func(input string) string {
			return fmt.Sprintf("Skills and experience:\n\n%s", input)
		},
	},
	ActionSuggestSkills: {
		system: `You are a career skills advisor. Based on the current skills listed, suggest additional relevant skills to add. Return a JSON object with:
- current_skills: array of skills found in the text
- suggested_skills: array of 10 additional skills to learn/add
- trending_skills: array of 5 currently trending skills in the industry
Return ONLY valid JSON, no markdown.`,
		user: func(input string) string {
			return fmt.Sprintf("Current resume/skills:\n\n%s", input)
		},
	},
}

// template resolves the fixed prompt pair for a recognized action
func template(a Action) promptTemplate {
	return templates[a]
}

// SystemPrompt exposes the fixed system prompt for an action
func SystemPrompt(a Action) string {
	return templates[a].system
}

// UserPrompt builds the user message for an action from the effective input
func UserPrompt(a Action, input string) string {
	return templates[a].user(input)
}
