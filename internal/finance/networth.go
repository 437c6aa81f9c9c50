package finance

import (
	"time"

	"finsight/internal/models"
)

// NetWorth is the balance sheet of a snapshot.
type NetWorth struct {
	TotalAssets      int64 `json:"total_assets"`
	LiquidAssets     int64 `json:"liquid_assets"`
	InvestmentAssets int64 `json:"investment_assets"`
	TotalLiabilities int64 `json:"total_liabilities"`
	NetWorth         int64 `json:"net_worth"`
}

// Aggregate sums accounts, assets, holdings and debts into a NetWorth.
//
// Credit card balances are amounts owed and count as liabilities; every other
// account type counts as an asset. Checking and savings balances plus liquid
// assets form LiquidAssets. Retirement balances plus holding market values
// form InvestmentAssets. The result is always recomputed from the full input.
func Aggregate(accounts []models.Account, assets []models.Asset, investments []models.Investment, debts []models.Debt) (NetWorth, error) {
	if err := validateAll(accounts, ValidateAccount); err != nil {
		return NetWorth{}, err
	}
	if err := validateAll(assets, ValidateAsset); err != nil {
		return NetWorth{}, err
	}
	if err := validateAll(investments, ValidateInvestment); err != nil {
		return NetWorth{}, err
	}
	if err := validateAll(debts, ValidateDebt); err != nil {
		return NetWorth{}, err
	}

	var nw NetWorth
	for _, a := range accounts {
		switch {
		case a.Type.IsCredit():
			nw.TotalLiabilities += a.Balance
		default:
			nw.TotalAssets += a.Balance
			if a.Type.IsLiquid() {
				nw.LiquidAssets += a.Balance
			}
			if a.Type == models.AccountTypeRetirement {
				nw.InvestmentAssets += a.Balance
			}
		}
	}
	for _, a := range assets {
		nw.TotalAssets += a.CurrentValue
		if a.IsLiquid {
			nw.LiquidAssets += a.CurrentValue
		}
	}
	for _, inv := range investments {
		mv := lineValue(inv.Quantity, inv.CurrentPrice)
		nw.TotalAssets += mv
		nw.InvestmentAssets += mv
	}
	for _, d := range debts {
		nw.TotalLiabilities += d.CurrentBalance
	}
	nw.NetWorth = nw.TotalAssets - nw.TotalLiabilities
	return nw, nil
}

// CashFlowSummary is income against expenses over a window. Transfers move
// money between the user's own accounts and are not counted.
type CashFlowSummary struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Income   int64     `json:"income"`
	Expenses int64     `json:"expenses"`
	Net      int64     `json:"net"`
}

// CashFlow sums income and expense transactions dated in [from, to).
func CashFlow(transactions []models.Transaction, from, to time.Time) CashFlowSummary {
	cf := CashFlowSummary{From: from, To: to}
	for _, t := range transactions {
		if t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}
		cf.add(t)
	}
	cf.Net = cf.Income - cf.Expenses
	return cf
}

// MonthlyCashFlow is CashFlow over a calendar month.
func MonthlyCashFlow(transactions []models.Transaction, month Month) CashFlowSummary {
	cf := CashFlowSummary{From: month.Start(), To: month.End()}
	for _, t := range transactions {
		if !month.Contains(t.Date) {
			continue
		}
		cf.add(t)
	}
	cf.Net = cf.Income - cf.Expenses
	return cf
}

func (cf *CashFlowSummary) add(t models.Transaction) {
	switch t.Type {
	case models.TransactionTypeIncome:
		cf.Income += t.Amount
	case models.TransactionTypeExpense:
		cf.Expenses += t.Amount
	}
}

// CreditUtilization returns total credit card balances as a percentage of
// total known credit limits. It is nil when no card has a positive limit.
func CreditUtilization(accounts []models.Account) *float64 {
	var owed, limit int64
	for _, a := range accounts {
		if !a.Type.IsCredit() || a.CreditLimit == nil || *a.CreditLimit <= 0 {
			continue
		}
		owed += a.Balance
		limit += *a.CreditLimit
	}
	if limit == 0 {
		return nil
	}
	pct := percentOf(owed, limit)
	return &pct
}
