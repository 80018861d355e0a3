// services/errors.go
package services

import (
	"context"
	"errors"
)

var (
	// ErrUnknownCode is returned when an airport or station code resolves to nothing.
	ErrUnknownCode = errors.New("unknown airport code")
	// ErrAircraftNotFound is returned by the lookup estimator for an unknown type designator.
	ErrAircraftNotFound = errors.New("aircraft type not found")
	// ErrInvalidInput wraps request values that fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured is returned when an optional collaborator has no credentials.
	ErrNotConfigured = errors.New("service not configured")
)

// ReferenceLoader populates a reference table on first use.
type ReferenceLoader interface {
	Ensure(ctx context.Context, table string) error
}
