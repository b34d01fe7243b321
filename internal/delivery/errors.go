package delivery

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingConfiguration marks a channel whose destination URL or credentials
// are not set. The channel is reported, never attempted.
var ErrMissingConfiguration = errors.New("missing configuration")

// maxUpstreamBody bounds how much of an upstream response body is carried in
// error messages and delivery reports.
const maxUpstreamBody = 512

// UpstreamError is a non-success response from a delivery target.
type UpstreamError struct {
	Status int
	Body   string
}

// NewUpstreamError builds an UpstreamError with the response body truncated.
func NewUpstreamError(status int, body []byte) *UpstreamError {
	b := string(body)
	if len(b) > maxUpstreamBody {
		b = b[:maxUpstreamBody]
	}
	return &UpstreamError{Status: status, Body: b}
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("UpstreamError: status %d", e.Status)
	}
	return fmt.Sprintf("UpstreamError: status %d: %s", e.Status, e.Body)
}

// errorLabel converts a channel failure into the report's error string.
func errorLabel(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "Timeout"
	case errors.Is(err, ErrMissingConfiguration):
		return "MissingConfiguration"
	default:
		return err.Error()
	}
}
