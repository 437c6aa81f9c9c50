package finance

import (
	"errors"

	"finsight/internal/models"
)

// ValidateAccount checks an account's type and optional credit fields.
func ValidateAccount(a models.Account) error {
	switch a.Type {
	case models.AccountTypeChecking, models.AccountTypeSavings, models.AccountTypeCreditCard,
		models.AccountTypeInvestment, models.AccountTypeRetirement:
	default:
		return invalid("account", a.ID, "type", "is not a known account type")
	}
	if a.CreditLimit != nil && *a.CreditLimit < 0 {
		return invalid("account", a.ID, "credit_limit", "must not be negative")
	}
	if a.MinimumPayment != nil && *a.MinimumPayment < 0 {
		return invalid("account", a.ID, "minimum_payment", "must not be negative")
	}
	return nil
}

// ValidateAsset checks an asset's value and depreciation inputs.
func ValidateAsset(a models.Asset) error {
	if a.CurrentValue < 0 {
		return invalid("asset", a.ID, "current_value", "must not be negative")
	}
	if a.PurchasePrice != nil && *a.PurchasePrice < 0 {
		return invalid("asset", a.ID, "purchase_price", "must not be negative")
	}
	if a.ExpectedLifespanYears != nil && !finite(*a.ExpectedLifespanYears) {
		return invalid("asset", a.ID, "expected_lifespan_years", "must be a finite number")
	}
	return nil
}

// ValidateDebt checks 0 <= currentBalance <= originalAmount and non-negative
// rate and minimum payment.
func ValidateDebt(d models.Debt) error {
	if d.CurrentBalance < 0 {
		return invalid("debt", d.ID, "current_balance", "must not be negative")
	}
	if d.CurrentBalance > d.OriginalAmount {
		return invalid("debt", d.ID, "current_balance", "must not exceed original_amount")
	}
	if d.InterestRateAnnualPercent < 0 || !finite(d.InterestRateAnnualPercent) {
		return invalid("debt", d.ID, "interest_rate_annual_percent", "must be a non-negative number")
	}
	if d.MinimumPayment < 0 {
		return invalid("debt", d.ID, "minimum_payment", "must not be negative")
	}
	return nil
}

// ValidateBill checks a bill's amount, frequency and status.
func ValidateBill(b models.Bill) error {
	if b.Amount < 0 {
		return invalid("bill", b.ID, "amount", "must not be negative")
	}
	if _, ok := billsPerMonth[b.Frequency]; !ok {
		return invalid("bill", b.ID, "frequency", "is not a known frequency")
	}
	switch b.Status {
	case models.BillStatusActive, models.BillStatusPaid, models.BillStatusOverdue:
	default:
		return invalid("bill", b.ID, "status", "is not a known status")
	}
	return nil
}

// ValidateTransaction checks a transaction's type and amount.
func ValidateTransaction(t models.Transaction) error {
	switch t.Type {
	case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeTransfer:
	default:
		return invalid("transaction", t.ID, "type", "is not a known transaction type")
	}
	if t.Amount < 0 {
		return invalid("transaction", t.ID, "amount", "must not be negative")
	}
	return nil
}

// ValidateBudgetItem checks a budget item's amount and month.
func ValidateBudgetItem(b models.BudgetItem) error {
	if b.BudgetedAmount < 0 {
		return invalid("budget item", b.ID, "budgeted_amount", "must not be negative")
	}
	if _, err := ParseMonth(b.Month); err != nil {
		return invalid("budget item", b.ID, "month", "must use the YYYY-MM format")
	}
	return nil
}

// ValidateGoal checks date ordering and non-negative amounts. A target amount
// of zero is allowed and reported as complete.
func ValidateGoal(g models.Goal) error {
	if !g.TargetDate.After(g.StartDate) {
		return invalid("goal", g.ID, "target_date", "must be after start_date")
	}
	if g.CurrentAmount < 0 {
		return invalid("goal", g.ID, "current_amount", "must not be negative")
	}
	if g.MonthlyContribution < 0 {
		return invalid("goal", g.ID, "monthly_contribution", "must not be negative")
	}
	return nil
}

// ValidateInvestment checks a holding's quantity and prices.
func ValidateInvestment(inv models.Investment) error {
	if inv.Quantity < 0 || !finite(inv.Quantity) {
		return invalid("investment", inv.ID, "quantity", "must be a non-negative number")
	}
	if inv.PurchasePrice < 0 {
		return invalid("investment", inv.ID, "purchase_price", "must not be negative")
	}
	if inv.CurrentPrice < 0 {
		return invalid("investment", inv.ID, "current_price", "must not be negative")
	}
	return nil
}

func validateAll[T any](items []T, validate func(T) error) error {
	for _, item := range items {
		if err := validate(item); err != nil {
			return err
		}
	}
	return nil
}

// collectAll validates every item and joins all failures.
func collectAll[T any](items []T, validate func(T) error) error {
	var errs []error
	for _, item := range items {
		if err := validate(item); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
