package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Currency  string `validate:"iso4217"`
	Account   string `validate:"account_type"`
	Frequency string `validate:"bill_frequency"`
	Category  string `validate:"category"`
	Month     string `validate:"budget_month"`
	Strategy  string `validate:"omitempty,payoff_strategy"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatalf("failed to register validations: %v", err)
	}
	return v
}

func TestRegisterOn(t *testing.T) {
	v := newValidate(t)
	valid := sample{Currency: "USD", Account: "credit_card", Frequency: "biweekly", Category: "groceries", Month: "2024-03", Strategy: "snowball"}

	t.Run("valid", func(t *testing.T) {
		if err := v.Struct(valid); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(s *sample)
		field  string
	}{
		{"unknown_currency", func(s *sample) { s.Currency = "XXY" }, "Currency"},
		{"unknown_account", func(s *sample) { s.Account = "cash" }, "Account"},
		{"unknown_frequency", func(s *sample) { s.Frequency = "daily" }, "Frequency"},
		{"unknown_category", func(s *sample) { s.Category = "pets" }, "Category"},
		{"bad_month", func(s *sample) { s.Month = "2024-13" }, "Month"},
		{"bad_strategy", func(s *sample) { s.Strategy = "fastest" }, "Strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := v.Struct(s)
			errs, ok := err.(validator.ValidationErrors)
			if !ok || len(errs) != 1 {
				t.Fatalf("expected one validation error, got %v", err)
			}
			if errs[0].Field() != tt.field {
				t.Errorf("expected failure on %s, got %s", tt.field, errs[0].Field())
			}
		})
	}
}
