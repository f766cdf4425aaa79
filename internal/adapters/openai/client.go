// Package openai implements a provider for OpenAI-compatible chat completion APIs.
package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"resty.dev/v3"
)

// Name is the provider identifier.
const Name = domain.ProviderOpenAI

const completionsPath = "/chat/completions"

var _ ports.Provider = (*Client)(nil)

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client implements ports.Provider over the /chat/completions endpoint.
type Client struct {
	http *resty.Client
}

// New creates a new Client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = domain.DefaultOpenAIBaseURL
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(opts.APIKey).
		SetHeader("Content-Type", "application/json").
		SetResponseBodyUnlimitedReads(true)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	return &Client{http: c}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return Name
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// Complete sends the prompt as a single user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	var (
		result chatResponse
		failed apiError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       req.Model,
			Messages:    []message{{Role: "user", Content: req.Prompt}},
			Temperature: req.Temperature,
		}).
		SetResult(&result).
		SetError(&failed).
		Post(completionsPath)
	if err != nil {
		return "", c.requestError(ctx, resp, err)
	}

	if resp.IsError() {
		msg := failed.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return "", domain.NewProviderError(Name, domain.CategoryForStatus(resp.StatusCode()), resp.StatusCode(), msg, nil)
	}

	if len(result.Choices) == 0 {
		return "", domain.NewProviderError(Name, domain.CategoryMalformedResponse, resp.StatusCode(), "response has no choices", nil)
	}
	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", domain.NewProviderError(Name, domain.CategoryMalformedResponse, resp.StatusCode(), "response has empty content", nil)
	}
	return text, nil
}

func (c *Client) requestError(ctx context.Context, resp *resty.Response, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return domain.NewProviderError(Name, domain.CategoryCanceled, 0, "request canceled", err)
	}
	// A response arrived but its body could not be decoded.
	if resp != nil && resp.StatusCode() != 0 {
		if resp.IsError() {
			return domain.NewProviderError(Name, domain.CategoryForStatus(resp.StatusCode()), resp.StatusCode(), resp.String(), nil)
		}
		return domain.NewProviderError(Name, domain.CategoryMalformedResponse, resp.StatusCode(), "failed to decode response", err)
	}
	return domain.NewProviderError(Name, domain.CategoryTransport, 0, "request failed", err)
}
