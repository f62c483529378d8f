package domain

import "errors"

// Sentinel errors shared across layers. Wrap them with fmt.Errorf("...: %w", err)
// and match with errors.Is.
var (
	// ErrNotFound is returned when an event does not exist or the supplied
	// access token does not match it. Callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request violates a data invariant
	// (slot count, status value, status count, station name length).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCatalog is returned when the default venue pool has no entries.
	// It is a startup fault, never a per-request one.
	ErrEmptyCatalog = errors.New("default venue pool is empty")
)
