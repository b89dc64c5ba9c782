package llm

import (
	"context"
	"errors"

	cgerrors "github.com/randalmurphal/chatgraph/pkg/chatgraph/errors"
)

// RetryClient decorates a Client with bounded exponential-backoff retry for
// transient failures. Permanent failures are returned immediately.
type RetryClient struct {
	inner Client
	cfg   cgerrors.RetryConfig
}

// NewRetryClient wraps a client with retry behavior.
// Zero-value cfg fields fall back to cgerrors.DefaultRetry.
func NewRetryClient(inner Client, cfg cgerrors.RetryConfig) *RetryClient {
	if cfg.MaxAttempts == 0 {
		cfg = cgerrors.DefaultRetry
	}
	if cfg.RetryableFunc == nil {
		cfg.RetryableFunc = retryable
	}
	return &RetryClient{inner: inner, cfg: cfg}
}

// Complete implements Client.
func (c *RetryClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	result := cgerrors.WithRetryContext(ctx, c.cfg, func(ctx context.Context) (*CompletionResponse, error) {
		return c.inner.Complete(ctx, req)
	})
	if result.Err != nil {
		return nil, result.Err
	}
	return result.Value, nil
}

// retryable prefers the llm.Error retryability verdict when present and
// falls back to error categorization otherwise.
func retryable(err error) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable
	}
	return cgerrors.IsRetryable(err)
}
