package finance

import (
	"errors"
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected ValidationError on %q, got nil", field)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if vErr.Field != field {
		t.Errorf("expected field %q, got %q (%v)", field, vErr.Field, vErr)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
