package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingAPIKey means the server-side secret was never configured. Fatal
// at the boundary; surfaced as a 500.
var ErrMissingAPIKey = errors.New("gemini: API_KEY is not set")

// ErrNoContent means the model answered but the response carried no usable
// text or image part.
var ErrNoContent = errors.New("gemini: response contained no content")

// BlockedError means the upstream refused the request, typically a safety
// filter. Reason and Ratings are included when the API reported them.
type BlockedError struct {
	Task    Task
	Reason  string
	Ratings string
}

func (e *BlockedError) Error() string {
	if e.Task == TaskGenerateImage {
		return "Image generation failed. Your request may have been blocked due to safety filters."
	}
	return "The request was blocked. Please try modifying your query."
}

// AuthError means the configured API key was rejected upstream.
type AuthError struct{ Err error }

func (e *AuthError) Error() string {
	return "Authentication Error: The provided API key is not valid."
}
func (e *AuthError) Unwrap() error { return e.Err }

// TimeoutError means the upstream call exceeded its deadline.
type TimeoutError struct{ Err error }

func (e *TimeoutError) Error() string {
	return "The request to the AI service timed out. Please try again with a simpler query."
}
func (e *TimeoutError) Unwrap() error { return e.Err }

// TransportError wraps any other failure talking to the upstream service.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return fmt.Sprintf("gemini: upstream call failed: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means a structured task's text did not parse as the
// expected JSON. Never silently defaulted.
type MalformedResponseError struct {
	Task Task
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return "The AI returned data in an unexpected format. Please try your query again."
}
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// classify converts a raw genai error into the gateway taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"), strings.Contains(msg, "API_KEY_INVALID"):
		return &AuthError{Err: err}
	case strings.Contains(strings.ToLower(msg), "deadline exceeded"):
		return &TimeoutError{Err: err}
	default:
		return &TransportError{Err: err}
	}
}

// HTTPStatus maps a gateway error to the proxy endpoint's status code.
func HTTPStatus(err error) int {
	var blocked *BlockedError
	var auth *AuthError
	var timeout *TimeoutError
	switch {
	case errors.As(err, &blocked):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
