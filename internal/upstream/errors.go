package upstream

import "fmt"

// Kind classifies upstream fetch failures.
type Kind string

const (
	// KindNetwork covers DNS, connection, and other transport failures.
	// StatusCode is 0.
	KindNetwork Kind = "network"
	// KindTimeout covers requests cancelled by the client deadline.
	// StatusCode is 408.
	KindTimeout Kind = "timeout"
	// KindHTTP covers completed requests with a non-2xx status.
	KindHTTP Kind = "http"
)

// Error is the typed failure every upstream fetch surfaces. For KindHTTP,
// Body holds the best-effort parsed JSON error body, or an empty map when
// the body was not parseable JSON.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       map[string]any
	cause      error
}

// NewError builds a typed upstream failure. cause may be nil.
func NewError(kind Kind, statusCode int, body map[string]any, cause error) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Body: body, cause: cause}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "upstream request timed out"
	case KindNetwork:
		return fmt.Sprintf("upstream unreachable: %v", e.cause)
	default:
		if msg, ok := e.Body["message"].(string); ok && msg != "" {
			return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, msg)
		}
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
}

// Unwrap exposes the transport error for errors.Is checks.
func (e *Error) Unwrap() error {
	return e.cause
}
