package models

import (
	"errors"
	"fmt"
)

var (
	ErrAnalysisInFlight = errors.New("analysis already in flight for this view")
	ErrViewNotFound     = errors.New("view not found")
	ErrViewClosed       = errors.New("view closed")
	ErrNoData           = errors.New("no data available")
)

// NetworkError is a transport failure or non-2xx answer from the backend.
// Passive reads recover from it with fallback data.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("network %s (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("network %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DataShapeError reports an unexpected or missing field. It is recovered
// locally by treating the field as absent.
type DataShapeError struct {
	Field string
	Err   error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("data shape %s: %v", e.Field, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// UserActionError is the failure of an explicit user action (delete, sync,
// trigger). It is surfaced once and never retried.
type UserActionError struct {
	Action string
	Err    error
}

func (e *UserActionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

func (e *UserActionError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err wraps a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
