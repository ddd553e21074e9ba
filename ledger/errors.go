/*
errors.go - Centralized error types for the ledger core

PURPOSE:
  All error types in one place. Callers classify with errors.Is against
  the sentinels; the structured types carry the detail.

ERROR CATEGORIES:
  1. Validation errors - An entry failed schema rules; nothing was persisted
  2. Snapshot errors   - A restore document is malformed; nothing was replaced
  3. Storage errors    - The persistent store failed or returned garbage

PROPAGATION POLICY:
  Storage and parse failures on reads are recovered inside the repository
  (logged, safe fallback returned). Validation and snapshot errors are
  surfaced to the caller as explicit results, never panics.
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all entry validation failures.
	ErrValidation = errors.New("invalid entry")

	// ErrBadSnapshot is the root of all restore-document failures.
	ErrBadSnapshot = errors.New("invalid snapshot")

	// ErrCorruptDocument is returned when a persisted collection document
	// cannot be decoded.
	ErrCorruptDocument = errors.New("corrupt stored document")

	// ErrStorageUnavailable is returned when the persistent store cannot be
	// read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEntryNotFound is returned when an entry ID does not exist in the
	// addressed collection.
	ErrEntryNotFound = errors.New("entry not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field of an entry failed which rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid entry: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// SnapshotError reports why a restore document was rejected.
type SnapshotError struct {
	Field  string
	Reason string
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s: %s", e.Field, e.Reason)
}

func (e *SnapshotError) Unwrap() error { return ErrBadSnapshot }

// ParseError reports a collection document that could not be decoded.
type ParseError struct {
	Collection Collection
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("corrupt stored document %q: %v", e.Collection, e.Err)
}

func (e *ParseError) Unwrap() error { return ErrCorruptDocument }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input
// rather than a storage fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrBadSnapshot) ||
		errors.Is(err, ErrEntryNotFound)
}
