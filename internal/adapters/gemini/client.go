// Package gemini implements a provider for the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/genai"
)

// Name is the provider identifier.
const Name = domain.ProviderGemini

var _ ports.Provider = (*Client)(nil)

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.Provider using the genai SDK.
type Client struct {
	client *genai.Client
}

// New creates a new Client.
func New(ctx context.Context, opts Options) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		cfg.HTTPOptions.Timeout = genai.Ptr(opts.Timeout)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create gemini client")
	}
	return &Client{client: client}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return Name
}

// Complete sends the prompt and returns the text of the first candidate.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	})
	if err != nil {
		return "", classify(ctx, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", domain.NewProviderError(Name, domain.CategoryMalformedResponse, 0, "response has no candidates", nil)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		msg := "response has empty content"
		if reason := resp.Candidates[0].FinishReason; reason != "" {
			msg += " (finish reason " + string(reason) + ")"
		}
		return "", domain.NewProviderError(Name, domain.CategoryMalformedResponse, 0, msg, nil)
	}
	return text, nil
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return domain.NewProviderError(Name, domain.CategoryCanceled, 0, "request canceled", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewProviderError(Name, domain.CategoryForStatus(apiErr.Code), apiErr.Code, apiErr.Message, nil)
	}
	return domain.NewProviderError(Name, domain.CategoryTransport, 0, "request failed", err)
}
