package service

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned before any network call when provider
	// credentials are missing.
	ErrNotConfigured = errors.New("payment provider not configured")
	// ErrUnsupportedMethod means no backend endpoint exists for a method.
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	// ErrProviderAuth means the OAuth2 token request was rejected.
	ErrProviderAuth = errors.New("payment provider authentication failed")
	// ErrNoCapture means a capture response had no capture record.
	ErrNoCapture = errors.New("no capture data in provider response")
	// ErrResponseTooLarge means an upstream body exceeded the read limit.
	ErrResponseTooLarge = errors.New("upstream response too large")
)

// UnavailableError wraps a transport-level failure (DNS, refused
// connection, timeout) talking to an upstream. No response was received.
type UnavailableError struct {
	Upstream string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Upstream, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx answer from an upstream.
type UpstreamError struct {
	Upstream   string
	StatusCode int
	// Message is the structured message found in the body, if any.
	Message string
	// Details is the parsed body, or {"error": <text>} when it was not JSON.
	Details any
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Upstream, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Upstream, e.StatusCode)
}

func newUpstreamError(upstream string, status int, body []byte) *UpstreamError {
	details := parseBody(body)
	return &UpstreamError{
		Upstream:   upstream,
		StatusCode: status,
		Message:    extractMessage(details),
		Details:    details,
	}
}

// parseBody decodes body as JSON, falling back to {"error": text}.
func parseBody(body []byte) any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		return map[string]any{"error": string(body)}
	}
	return parsed
}

// extractMessage looks for error.message, then message.
func extractMessage(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if inner, ok := m["error"].(map[string]any); ok {
		if s, ok := inner["message"].(string); ok && s != "" {
			return s
		}
	}
	if s, ok := m["message"].(string); ok {
		return s
	}
	return ""
}
