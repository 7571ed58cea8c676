// Package provider talks to the Anthropic Messages API.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = int64(4096)
)

// Config carries everything the client needs; nothing is read from the environment here.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	BaseURL   string
}

// Client sends a full conversation plus tool schemas and returns one assistant message.
type Client struct {
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicClient builds a client from cfg. The SDK's automatic retries are
// disabled; a failed request surfaces immediately as a *TransportError.
// Extra opts are applied last (tests inject an HTTP client this way).
func NewAnthropicClient(cfg Config, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		api:       anthropic.NewClient(append(base, opts...)...),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
	}
}

// Model reports the model identifier sent with every request.
func (c *Client) Model() string { return string(c.model) }

// Complete sends one Messages API request.
func (c *Client) Complete(ctx context.Context, history []anthropic.MessageParam, tools []anthropic.ToolUnionParam) (*anthropic.Message, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  history,
		Tools:     tools,
	}
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return msg, nil
}

// TransportError wraps any failure of the completion request: network, auth,
// rate limiting, server errors or an undecodable response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if code := e.StatusCode(); code != 0 {
		return fmt.Sprintf("completion request failed (status %d): %v", code, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status of the failed response, or 0 when none was received.
func (e *TransportError) StatusCode() int {
	var apiErr *anthropic.Error
	if errors.As(e.Err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
