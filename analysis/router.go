package analysis

import (
	"context"
	"log"
)

// CompletionClient issues a single chat-completion request carrying a
// system and a user message and returns the first choice's text.
// Implementations classify upstream failures by returning *Error with
// the appropriate kind.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Request is the inbound call shape accepted from the caller
// @Description AI resume analysis request
type Request struct {
	Action     string `json:"action" example:"parse_resume"`
	Text       string `json:"text,omitempty" example:"Go, SQL, Kubernetes"`
	ResumeText string `json:"resume_text,omitempty" example:"John Doe\nBackend engineer..."`

	// FallbackText is an optional last-resort candidate synthesized by
	// the caller from a stored resume record. Not part of the wire shape.
	FallbackText string `json:"-"`
}

// Router maps an action plus text payload to a prompt template pair,
// issues exactly one outbound completion request and normalizes the
// response into a typed result. It holds no mutable state between calls
// and is safe for concurrent use.
type Router struct {
	client        CompletionClient
	maxInputChars int
}

// NewRouter creates an analysis router around an injected completion
// client. maxInputChars <= 0 selects DefaultMaxInputChars.
func NewRouter(client CompletionClient, maxInputChars int) *Router {
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	return &Router{
		client:        client,
		maxInputChars: maxInputChars,
	}
}

// Analyze validates the action, builds the prompt pair, performs the
// single upstream call and decodes the completion into the action's
// result shape. Decode failure degrades to the raw fallback variant;
// upstream failures surface as *Error with a machine-checkable kind.
func (r *Router) Analyze(ctx context.Context, req Request) (*Result, error) {
	action, err := ParseAction(req.Action)
	if err != nil {
		return nil, err
	}

	tpl := template(action)

	input := EffectiveInput(req.ResumeText, req.Text, req.FallbackText)
	if input == "" {
		return nil, &Error{
			Kind:    KindInvalidAction,
			Message: "text or resume_text is required",
		}
	}
	input = truncate(input, r.maxInputChars)

	userPrompt := tpl.user(input)

	content, err := r.client.Complete(ctx, tpl.system, userPrompt)
	if err != nil {
		var ae *Error
		if e, ok := err.(*Error); ok {
			ae = e
		} else {
			ae = TransportError(err)
		}
		log.Printf("[Analysis] action=%s upstream error (%s): %v", action, ae.Kind, err)
		return nil, ae
	}

	result := decodeResult(action, content)
	if result.Degraded {
		log.Printf("[Analysis] action=%s decode degraded, returning raw content (%d bytes)", action, len(content))
	}
	return result, nil
}
