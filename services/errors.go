package services

import (
	"fmt"
	"strings"

	"bazaar-system/models"
)

// Domain error taxonomy. Handlers map these onto HTTP statuses; anything
// else coming out of a service is treated as an upstream store failure.

// ValidationError reports missing or malformed input. Fields carries the
// per-field (or per-index, for bulk payloads) detail messages.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, "; "))
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity, including client-supplied
// references that do not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ForbiddenError reports an action the caller's role does not permit.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ConflictError reports duplicates and already-linked entities.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// DependentError reports a delete blocked by existing dependents. It carries
// the full report so the caller can show counts and samples.
type DependentError struct {
	Entity string
	Report *models.DeleteReport
}

func (e *DependentError) Error() string {
	return fmt.Sprintf("%s still has %d dependent record(s); retry with force=true to delete anyway",
		e.Entity, e.Report.TotalDependents())
}
