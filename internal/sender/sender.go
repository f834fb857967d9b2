package sender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"hooksend/internal/payload"
	"hooksend/internal/signature"
)

const (
	// DefaultTimeout bounds the single outbound request. The request
	// fails rather than hangs if the receiver does not answer in time.
	DefaultTimeout = 30 * time.Second

	// MaxResponseBytes caps how much of the response body is read back
	MaxResponseBytes = 1_000_000 // 1 MB
)

// Result is the outcome of a completed HTTP exchange. Transport
// failures (connection refused, DNS, TLS, timeout) never produce a
// Result; they surface as errors from Send.
type Result struct {
	StatusCode int
	Body       string
}

// Succeeded reports whether the receiver accepted the webhook.
// Only an exact 200 counts as success.
func (r *Result) Succeeded() bool {
	return r.StatusCode == http.StatusOK
}

// Sender delivers signed deployment notifications. It makes exactly
// one attempt per Send call; retry policy belongs to the caller's
// automation, not here.
type Sender struct {
	Client *http.Client
	Out    io.Writer // operator audit trail
	Logger *slog.Logger
}

// NewSender creates a sender with the given request timeout.
// A zero or negative timeout falls back to DefaultTimeout.
func NewSender(timeout time.Duration, out io.Writer, logger *slog.Logger) *Sender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		Client: &http.Client{Timeout: timeout},
		Out:    out,
		Logger: logger,
	}
}

// Send serializes the notification to compact JSON, signs those exact
// bytes with the secret, and POSTs them to url with the signature
// header set. The target URL, signature, and an indented rendering of
// the payload are written to the audit trail before the request goes
// out. Returns the HTTP status and response body, or a transport
// error if the request could not complete.
func (s *Sender) Send(ctx context.Context, url string, n *payload.DeployNotification, secret string) (*Result, error) {
	body, err := n.Marshal()
	if err != nil {
		return nil, err
	}

	sig := signature.Sign(body, secret)

	// Audit trail: everything the operator needs to reproduce or
	// verify the delivery, minus the secret itself.
	indented, err := n.MarshalIndent()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.Out, "Webhook URL: %s\n", url)
	fmt.Fprintf(s.Out, "Signature: %s\n", sig)
	fmt.Fprintf(s.Out, "Payload:\n%s\n", indented)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.Header, sig)

	s.Logger.Debug("sending webhook",
		"url", url,
		"hook_id", n.HookID,
		"sha", n.SHA,
		"payload_bytes", len(body))

	start := time.Now()
	resp, err := s.Client.Do(req)
	if err != nil {
		s.Logger.Debug("webhook request failed", "url", url, "error", err)
		return nil, fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	s.Logger.Debug("webhook response received",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}, nil
}
