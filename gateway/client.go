package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobtatkal/backend/analysis"
	"github.com/jobtatkal/backend/config"
	"github.com/jobtatkal/backend/utils"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. It
// implements analysis.CompletionClient and classifies upstream failures
// into the router's error kinds: HTTP 429 is rate limiting, HTTP 402 is
// exhausted credits, everything else is a transport failure.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a gateway client from configuration
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.AIGatewayURL == "" {
		return nil, fmt.Errorf("AI_GATEWAY_URL is required")
	}
	if cfg.AIGatewayAPIKey == "" {
		return nil, fmt.Errorf("AI_GATEWAY_API_KEY is required")
	}

	return &Client{
		endpoint:   cfg.AIGatewayURL,
		apiKey:     cfg.AIGatewayAPIKey,
		model:      cfg.AIModel,
		httpClient: utils.NewHTTPClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends exactly one completion request with a system and a user
// message and returns the first choice's content
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", analysis.TransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", analysis.TransportError(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", analysis.TransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", analysis.RateLimitedError(fmt.Errorf("gateway returned %d", resp.StatusCode))
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", analysis.QuotaExhaustedError(fmt.Errorf("gateway returned %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", analysis.TransportError(fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", analysis.TransportError(err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", analysis.TransportError(fmt.Errorf("malformed completion envelope: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", analysis.TransportError(fmt.Errorf("completion response missing choices"))
	}

	return parsed.Choices[0].Message.Content, nil
}

var _ analysis.CompletionClient = (*Client)(nil)
