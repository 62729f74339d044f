// Package llm talks to an OpenAI-compatible chat-completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/pkg/retrier"
)

const (
	opComplete = "chat completion"

	// maxBodyLen caps how much of an error response is kept.
	maxBodyLen = 512
)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds each attempt separately.
	Timeout        time.Duration
	MaxRetries     uint64
	RetryBaseDelay time.Duration
	Temperature    float32
	MaxTokens      int
	HTTPClient     *http.Client
}

// Client sends single-message prompts and returns the reply text.
type Client struct {
	api         *openai.Client
	model       string
	timeout     time.Duration
	temperature float32
	maxTokens   int
	policy      retrier.Policy
	log         *slog.Logger
}

// NewClient creates a Client for the endpoint at opts.BaseURL.
func NewClient(opts Options, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		timeout:     opts.Timeout,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		policy:      retrier.Policy{MaxRetries: opts.MaxRetries, BaseDelay: opts.RetryBaseDelay},
		log:         logger.With("adapter", "llm"),
	}
}

// Complete sends prompt as one user message and returns the first choice's content.
// Network failures, timeouts, 429 and 5xx responses are retried; every failure
// is returned as *domain.UpstreamError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	start := time.Now()
	var resp openai.ChatCompletionResponse

	attempts, err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		var err error
		resp, err = c.attempt(ctx, req)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !isRetryable(err) {
			return err
		}
		if attempt < c.policy.Attempts() {
			c.log.WarnContext(ctx, "llm retry",
				slog.Int("attempt", attempt),
				slog.String("reason", reason(err)),
				slog.Duration("delay", time.Duration(attempt)*c.policy.BaseDelay),
			)
		}
		return retrier.Retryable(err)
	})
	if err != nil {
		uerr := newUpstreamError(err, attempts)
		c.log.ErrorContext(ctx, "llm request failed",
			slog.Int("attempts", attempts),
			slog.Int("status", uerr.StatusCode),
			slog.String("body", uerr.Body),
			slog.String("error", err.Error()),
		)
		return "", uerr
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &domain.UpstreamError{Op: opComplete, Attempts: attempts, Err: errors.New("reply has no content")}
	}

	c.log.InfoContext(ctx, "llm completion",
		slog.String("model", resp.Model),
		slog.Int("attempts", attempts),
		slog.Duration("duration", time.Since(start)),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		slog.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// attempt runs one request under its own deadline.
func (c *Client) attempt(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.api.CreateChatCompletion(ctx, req)
}

func isRetryable(err error) bool {
	if status := statusOf(err); status != 0 {
		return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func reason(err error) string {
	if status := statusOf(err); status != 0 {
		return fmt.Sprintf("status %d", status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "network error"
}

func newUpstreamError(err error, attempts int) *domain.UpstreamError {
	uerr := &domain.UpstreamError{Op: opComplete, Attempts: attempts, Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		uerr.StatusCode = apiErr.HTTPStatusCode
		uerr.Body = truncate(apiErr.Message)
	case errors.As(err, &reqErr):
		uerr.StatusCode = reqErr.HTTPStatusCode
		uerr.Body = truncate(string(reqErr.Body))
	}
	return uerr
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxBodyLen {
		return s
	}
	return s[:maxBodyLen] + "..."
}
