package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrDatasetNotFound   = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrModelNotFound     = fmt.Errorf("%w: model", ErrNotFound)
	ErrColumnNotFound    = fmt.Errorf("%w: column", ErrNotFound)
	ErrDimensionNotFound = fmt.Errorf("%w: dimension", ErrNotFound)

	// Load-time errors
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrDatasetEmpty     = errors.New("dataset contains no rows")
	ErrRowMalformed     = errors.New("malformed row")

	// Analytics states (non-fatal, surfaced as explicit "no data" results)
	ErrNoData        = errors.New("no data in view")
	ErrNotEnoughData = errors.New("not enough data for test")

	// Integrity errors
	ErrHashMismatch = errors.New("hash mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

func NewRowError(line int, reason string) error {
	return fmt.Errorf("%w: line %d: %s", ErrRowMalformed, line, reason)
}

func NewDimensionError(name string) error {
	return fmt.Errorf("%w: %s", ErrDimensionNotFound, name)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrDatasetNotLoaded) ||
		errors.Is(err, ErrModelNotLoaded) ||
		errors.Is(err, ErrDatasetEmpty) ||
		errors.Is(err, ErrRowMalformed)
}

func IsNoDataError(err error) bool {
	return errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrNotEnoughData)
}
