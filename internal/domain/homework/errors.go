// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
	"strings"
)

// RequestError covers both transport failures and non-200 answers from the API.
type RequestError struct {
	StatusCode int    // 0 when the request never got a response
	Body       string // truncated response body, diagnostic only
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("api request failed (status %d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("api request failed: %v", e.Err)
	default:
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// ShapeError reports a malformed top-level response.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "malformed api response: " + e.Reason
}

// MissingFieldError reports a homework record without a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("homework record has no %q", e.Field)
}

// UnknownStatusError reports a status outside the documented vocabulary.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("undocumented homework status %q", e.Status)
}

// ConfigurationError lists the secrets absent at start-up.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Kind returns a short label for err, used for logs and metrics.
func Kind(err error) string {
	var (
		reqErr    *RequestError
		shapeErr  *ShapeError
		fieldErr  *MissingFieldError
		statusErr *UnknownStatusError
		cfgErr    *ConfigurationError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &reqErr):
		return "request"
	case errors.As(err, &shapeErr):
		return "shape"
	case errors.As(err, &fieldErr):
		return "missing_field"
	case errors.As(err, &statusErr):
		return "unknown_status"
	case errors.As(err, &cfgErr):
		return "configuration"
	default:
		return "other"
	}
}
