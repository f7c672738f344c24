package gemini

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jobtatkal/backend/analysis"
	"github.com/jobtatkal/backend/config"
)

// Client wraps the Vertex AI Gemini client behind the completion
// interface the analysis router expects. It is the alternative to the
// HTTP gateway provider; both honor the same two-message contract.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: cfg.AIModel,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// Complete issues a single generation with the system prompt attached as
// a system instruction and the user prompt as the sole content part.
// Resource exhaustion from Vertex maps to the rate-limited kind so the
// caller sees the same taxonomy regardless of provider.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.2) // lower temperature for more consistent outputs
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		if status.Code(err) == codes.ResourceExhausted {
			return "", analysis.RateLimitedError(err)
		}
		return "", analysis.TransportError(err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", analysis.TransportError(fmt.Errorf("no response from Gemini"))
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

var _ analysis.CompletionClient = (*Client)(nil)
