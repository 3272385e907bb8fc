package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CompletionClient is the contract for the external text-completion service.
// The HTTP implementation talks to an OpenAI-compatible chat endpoint; tests
// substitute a stub.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Ping(ctx context.Context) error
}

// Options configures the HTTP completion client.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// ErrMissingBaseURL indicates the completion endpoint is not configured.
var ErrMissingBaseURL = errors.New("assistant base URL is required")

// HTTPClient calls an OpenAI-compatible /chat/completions endpoint.
type HTTPClient struct {
	opts   Options
	client *http.Client
}

// NewHTTPClient builds the completion client.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	if opts.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &HTTPClient{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the raw model reply.
func (c *HTTPClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	url := strings.TrimSuffix(c.opts.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion service returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Ping probes the completion service's model listing to verify reachability
// and credentials. Used by the health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	url := strings.TrimSuffix(c.opts.BaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("assistant unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}
	return nil
}
