// Package vision is the description bridge: it forwards a captured PNG to
// an OpenRouter-compatible vision model and returns the text verbatim.
// Failures are classified but never retried here; retries belong to the
// entry surface.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/screenlens/screenlens/internal/config"
	"github.com/screenlens/screenlens/internal/fault"
)

// Client talks to one chat-completions endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
}

// NewClient builds a client from config. The timeout is carried per-request
// via context, not on the http.Client, so callers stay in control.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.Vision.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Vision.Model,
		maxTokens: cfg.Vision.MaxTokens,
		http:      &http.Client{},
	}
}

type message struct {
	Role    string    `json:"role"`
	Content []content `json:"content"`
}

type content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// Describe sends pngData with the given prompt and returns the model's text
// response unmodified. The caller bounds the call with ctx.
func (c *Client) Describe(ctx context.Context, pngData []byte, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fault.New(fault.UpstreamUnavailable,
			"no API key configured; set OPENROUTER_API_KEY")
	}

	dataURL := fmt.Sprintf("data:image/png;base64,%s",
		base64.StdEncoding.EncodeToString(pngData))

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{{
			Role: "user",
			Content: []content{
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				{Type: "text", Text: prompt},
			},
		}},
		Temperature: 0.1,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fault.Wrap(fault.UpstreamUnavailable, err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fault.Wrap(fault.UpstreamUnavailable, err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", fault.Wrap(fault.UpstreamTimeout, err,
				"vision request abandoned after timeout")
		}
		return "", fault.Wrap(fault.UpstreamUnavailable, err, "vision request failed")
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fault.Wrap(fault.UpstreamUnavailable, err,
			"failed to decode vision response (status %d)", resp.StatusCode)
	}

	if parsed.Error != nil {
		return "", classifyAPIError(resp.StatusCode, parsed.Error)
	}
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", fault.New(fault.UpstreamRefused,
				"vision service returned status %d", resp.StatusCode)
		}
		return "", fault.New(fault.UpstreamUnavailable,
			"vision service returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fault.New(fault.UpstreamUnavailable, "no choices in vision response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// classifyAPIError maps a service-side error body onto an error kind:
// auth and server trouble are availability problems, everything else in the
// 4xx range is a content rejection.
func classifyAPIError(status int, e *apiError) error {
	detail := fmt.Sprintf("%s (type %s, code %v, status %d)", e.Message, e.Type, e.Code, status)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fault.New(fault.UpstreamUnavailable, "vision auth failed: %s", detail)
	case status >= 400 && status < 500:
		return fault.New(fault.UpstreamRefused, "vision service rejected the request: %s", detail)
	default:
		return fault.New(fault.UpstreamUnavailable, "vision service error: %s", detail)
	}
}
