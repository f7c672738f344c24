package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveInput(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"prefers first non-empty", []string{"primary", "secondary"}, "primary"},
		{"skips empty", []string{"", "secondary"}, "secondary"},
		{"skips whitespace-only", []string{"   \n", "fallback"}, "fallback"},
		{"all empty", []string{"", ""}, ""},
		{"no candidates", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveInput(tt.candidates...))
		})
	}
}

func TestSynthesizeResumeSummary(t *testing.T) {
	assert.Equal(t,
		"Resume: cv.pdf. Skills: Go, SQL",
		SynthesizeResumeSummary("cv.pdf", []string{"Go", "SQL"}))

	assert.Equal(t,
		"Resume: cv.pdf. Skills: Not parsed yet",
		SynthesizeResumeSummary("cv.pdf", nil))

	assert.Equal(t, "", SynthesizeResumeSummary("", nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abcde"+truncationNote, truncate("abcdefgh", 5))
	assert.Equal(t, "anything", truncate("anything", 0), "non-positive cap disables truncation")
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	// "héllo" is 6 bytes; a 2-byte cap lands inside the é and must back up
	got := truncate("héllo", 2)
	assert.Equal(t, "h"+truncationNote, got)
	assert.True(t, utf8.ValidString(got))

	multi := strings.Repeat("résumé", 10)
	for max := 1; max < len(multi); max++ {
		assert.True(t, utf8.ValidString(truncate(multi, max)), "cap %d split a rune", max)
	}
}

func TestParseActionRejectsUnknownTags(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(string(a))
		assert.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("summarize")
	assert.Error(t, err)
	assert.Equal(t, KindInvalidAction, KindOf(err))
}
