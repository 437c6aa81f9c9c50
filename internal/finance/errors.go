package finance

import "fmt"

// ValidationError reports a record that violates the invariants of its type.
// It signals upstream data corruption and is never corrected silently.
type ValidationError struct {
	Entity string
	ID     string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s %s", e.Entity, e.ID, e.Field, e.Reason)
}

func invalid(entity, id, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, ID: id, Field: field, Reason: reason}
}
