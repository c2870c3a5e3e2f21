package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/kmanav329/ai-resume-screener/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// WithRetry wraps a client so that one extra attempt is made after a
// transient failure. Non-transient errors pass through immediately.
func WithRetry(base Client, runID string) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, runID: runID}
}

type retryingClient struct {
	base  Client
	runID string
}

func (r retryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	return r.retry(ctx, prompt, r.base.Complete)
}

func (r retryingClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	return r.retry(ctx, prompt, r.base.CompleteJSON)
}

func (r retryingClient) retry(ctx context.Context, prompt string, call func(context.Context, string) (string, error)) (string, error) {
	resp, err := call(ctx, prompt)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Warn("llm retry", map[string]any{"attempt": 1, "run_id": r.runID, "error": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return call(ctx, prompt)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

var _ Client = retryingClient{}
