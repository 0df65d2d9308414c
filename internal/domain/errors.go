package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Both kinds are recoverable: the user fixes the form or
// simply submits again.
var (
	ErrValidation       = errors.New("invalid campaign form")
	ErrTransport        = errors.New("analysis transport failed")
	ErrAnalysisInFlight = errors.New("an analysis is already running")
)

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is reports ErrValidation so callers can match the kind with errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransportError is any failure to obtain a result from a source: network
// errors, non-2xx responses (4xx and 5xx alike) and undecodable bodies.
type TransportError struct {
	Op         string // e.g. "POST /api/analyze-campaign"
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports ErrTransport so callers can match the kind with errors.Is.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
