package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"finsight/internal/finance"
	"finsight/internal/models"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" {
		t.Errorf("expected code INTERNAL_ERROR, got %s", err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match its cause")
	}
	if ErrInternalServer.Internal != nil {
		t.Error("expected sentinel to be left unchanged")
	}
}

func TestFromFinance(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if err := FromFinance(nil); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("validation_error", func(t *testing.T) {
		_, engineErr := finance.Performance(models.Investment{Quantity: -1})
		err := FromFinance(engineErr)

		var appErr *AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected *AppError, got %T", err)
		}
		if appErr.Code != "VALIDATION_FAILED" || appErr.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("expected VALIDATION_FAILED/422, got %s/%d", appErr.Code, appErr.StatusCode)
		}
		if appErr.Message != engineErr.Error() {
			t.Errorf("expected message %q, got %q", engineErr.Error(), appErr.Message)
		}
		var vErr *finance.ValidationError
		if !errors.As(err, &vErr) {
			t.Error("expected validation error to stay reachable")
		}
	})

	t.Run("app_error_passthrough", func(t *testing.T) {
		if err := FromFinance(ErrGoalNotFound); err != ErrGoalNotFound {
			t.Errorf("expected passthrough, got %v", err)
		}
	})

	t.Run("other_error", func(t *testing.T) {
		var appErr *AppError
		if !errors.As(FromFinance(fmt.Errorf("boom")), &appErr) || appErr.Code != "INTERNAL_ERROR" {
			t.Errorf("expected INTERNAL_ERROR, got %v", appErr)
		}
	})
}
