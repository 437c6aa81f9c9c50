package finance

import (
	"errors"
	"slices"

	"finsight/internal/models"
)

// Snapshot is a point-in-time collection of all financial records of one user.
type Snapshot struct {
	Accounts     []models.Account     `json:"accounts"`
	Assets       []models.Asset       `json:"assets"`
	Debts        []models.Debt        `json:"debts"`
	Bills        []models.Bill        `json:"bills"`
	Transactions []models.Transaction `json:"transactions"`
	BudgetItems  []models.BudgetItem  `json:"budget_items"`
	Goals        []models.Goal        `json:"goals"`
	Investments  []models.Investment  `json:"investments"`
}

// DefaultCurrency is assumed for accounts that do not name a currency.
const DefaultCurrency = "USD"

// WithDefaults returns a copy of s with unset optional fields filled in:
// account currency, bill status and goal priority.
func (s Snapshot) WithDefaults() Snapshot {
	s.Accounts = slices.Clone(s.Accounts)
	for i := range s.Accounts {
		if s.Accounts[i].Currency == "" {
			s.Accounts[i].Currency = DefaultCurrency
		}
	}
	s.Bills = slices.Clone(s.Bills)
	for i := range s.Bills {
		if s.Bills[i].Status == "" {
			s.Bills[i].Status = models.BillStatusActive
		}
	}
	s.Goals = slices.Clone(s.Goals)
	for i := range s.Goals {
		if s.Goals[i].Priority == "" {
			s.Goals[i].Priority = models.GoalPriorityMedium
		}
	}
	return s
}

// Validate checks every record and returns all failures joined together, or
// nil when the snapshot is well formed.
func (s Snapshot) Validate() error {
	return errors.Join(
		collectAll(s.Accounts, ValidateAccount),
		collectAll(s.Assets, ValidateAsset),
		collectAll(s.Debts, ValidateDebt),
		collectAll(s.Bills, ValidateBill),
		collectAll(s.Transactions, ValidateTransaction),
		collectAll(s.BudgetItems, ValidateBudgetItem),
		collectAll(s.Goals, ValidateGoal),
		collectAll(s.Investments, ValidateInvestment),
	)
}

// IsEmpty reports whether the snapshot holds no records at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Accounts) == 0 && len(s.Assets) == 0 && len(s.Debts) == 0 &&
		len(s.Bills) == 0 && len(s.Transactions) == 0 && len(s.BudgetItems) == 0 &&
		len(s.Goals) == 0 && len(s.Investments) == 0
}
