package finance

import (
	"slices"
	"strings"

	"finsight/internal/models"
)

// CategoryBudget compares planned and actual spend for one category.
type CategoryBudget struct {
	Category  models.Category `json:"category"`
	Label     string          `json:"label"`
	Budgeted  int64           `json:"budgeted"`
	Spent     int64           `json:"spent"`
	Remaining int64           `json:"remaining"`
	// PercentUsed is nil when nothing was budgeted but money was spent; a
	// ratio against a zero budget would be meaningless.
	PercentUsed *float64 `json:"percent_used"`
	OverBudget  bool     `json:"over_budget"`
}

// BudgetReport is the budget variance of one month.
type BudgetReport struct {
	Month         Month `json:"month"`
	TotalBudgeted int64 `json:"total_budgeted"`
	TotalSpent    int64 `json:"total_spent"`
	// Variance is TotalBudgeted - TotalSpent; positive means under budget.
	Variance int64 `json:"variance"`
	// UnbudgetedSpent is expense in categories that have no budget item for
	// the month. It is not part of TotalSpent.
	UnbudgetedSpent int64            `json:"unbudgeted_spent"`
	PerCategory     []CategoryBudget `json:"per_category"`
}

// SpentAmount sums expense transactions of a category dated within month.
func SpentAmount(transactions []models.Transaction, category models.Category, month Month) int64 {
	var spent int64
	for _, t := range transactions {
		if t.Type == models.TransactionTypeExpense && t.Category == category && month.Contains(t.Date) {
			spent += t.Amount
		}
	}
	return spent
}

// BudgetSummary compares the month's budget items with its expense
// transactions. Items for the same category are added together.
func BudgetSummary(items []models.BudgetItem, transactions []models.Transaction, month Month) (BudgetReport, error) {
	if err := validateAll(items, ValidateBudgetItem); err != nil {
		return BudgetReport{}, err
	}
	if err := validateAll(transactions, ValidateTransaction); err != nil {
		return BudgetReport{}, err
	}

	budgeted := make(map[models.Category]int64)
	key := month.String()
	for _, item := range items {
		if item.Month == key {
			budgeted[item.Category] += item.BudgetedAmount
		}
	}

	spent := make(map[models.Category]int64)
	report := BudgetReport{Month: month, PerCategory: make([]CategoryBudget, 0, len(budgeted))}
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense || !month.Contains(t.Date) {
			continue
		}
		if _, ok := budgeted[t.Category]; ok {
			spent[t.Category] += t.Amount
		} else {
			report.UnbudgetedSpent += t.Amount
		}
	}

	for category, amount := range budgeted {
		cb := categoryBudget(category, amount, spent[category])
		report.TotalBudgeted += cb.Budgeted
		report.TotalSpent += cb.Spent
		report.PerCategory = append(report.PerCategory, cb)
	}
	slices.SortFunc(report.PerCategory, func(a, b CategoryBudget) int {
		return strings.Compare(string(a.Category), string(b.Category))
	})
	report.Variance = report.TotalBudgeted - report.TotalSpent
	return report, nil
}

func categoryBudget(category models.Category, budgeted, spent int64) CategoryBudget {
	cb := CategoryBudget{
		Category:   category,
		Label:      category.Label(),
		Budgeted:   budgeted,
		Spent:      spent,
		Remaining:  budgeted - spent,
		OverBudget: spent > budgeted,
	}
	switch {
	case budgeted > 0:
		pct := percentOf(spent, budgeted)
		cb.PercentUsed = &pct
	case spent == 0:
		pct := 0.0
		cb.PercentUsed = &pct
	}
	return cb
}
