package analysis

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputChars caps the text forwarded to the model endpoint.
// Oversized input is truncated with a note rather than rejected, so
// behavior stays deterministic for adversarial payloads.
const DefaultMaxInputChars = 20000

const truncationNote = "\n[truncated]"

// EffectiveInput returns the first non-empty candidate, in order of
// preference. The router never sends an empty user prompt; callers
// append a synthesized placeholder as the last candidate when the
// action tolerates it.
func EffectiveInput(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// SynthesizeResumeSummary builds a last-resort input string from a stored
// resume record when no raw text is available
func SynthesizeResumeSummary(fileName string, parsedSkills []string) string {
	if fileName == "" && len(parsedSkills) == 0 {
		return ""
	}
	skills := "Not parsed yet"
	if len(parsedSkills) > 0 {
		skills = strings.Join(parsedSkills, ", ")
	}
	return "Resume: " + fileName + ". Skills: " + skills
}

// truncate caps input at max bytes, appending a truncation note. The cut
// backs up to a rune boundary so truncation never produces invalid UTF-8.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationNote
}
