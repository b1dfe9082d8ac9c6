package providers

import (
	"errors"
	"fmt"
	"strings"
)

// GenerationError is returned when the generation service answers with a
// non-success HTTP status.
type GenerationError struct {
	StatusCode int
	Body       string
}

func (e *GenerationError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("generation failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("generation failed (status %d): %s", e.StatusCode, body)
}

// TransportError wraps a network-level failure talking to the generation
// service: connection refused, read failures, or a malformed response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError checks if an error is a transport-level failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsGenerationError checks if an error is an HTTP status failure.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
