package domain

import "fmt"

// Error types for consistent error handling across the gateway.

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external collaborator
// (lead persistence, session store). The detail is logged, never exposed.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrUpstreamUnreachable indicates the proxy could not complete a round trip
// to the POS backend (dial failure, timeout, non-JSON response). It is kept
// distinct from upstream-reported errors: those are relayed verbatim with
// the upstream's own status code and never surface as a Go error.
type ErrUpstreamUnreachable struct {
	Endpoint string
	Err      error
}

func (e *ErrUpstreamUnreachable) Error() string {
	return fmt.Sprintf("upstream unreachable [%s]: %v", e.Endpoint, e.Err)
}

func (e *ErrUpstreamUnreachable) Unwrap() error {
	return e.Err
}

// ErrUnauthorized indicates a missing or invalid admin token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}
