package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/models"
)

// DebtPayoff is when a single debt is cleared within a PayoffPlan.
type DebtPayoff struct {
	DebtID       string     `json:"debt_id"`
	Creditor     string     `json:"creditor"`
	PayoffMonth  int        `json:"payoff_month"`
	PayoffDate   *time.Time `json:"payoff_date"`
	InterestPaid int64      `json:"interest_paid"`
}

// PayoffPlan is a month-by-month simulation of paying down all debts with a
// fixed monthly budget.
type PayoffPlan struct {
	Strategy      Strategy     `json:"strategy"`
	MonthlyBudget int64        `json:"monthly_budget"`
	Months        int          `json:"months"`
	DebtFree      bool         `json:"debt_free"`
	DebtFreeDate  *time.Time   `json:"debt_free_date"`
	TotalInterest int64        `json:"total_interest"`
	TotalPaid     int64        `json:"total_paid"`
	Debts         []DebtPayoff `json:"debts"`
}

// BuildPayoffPlan simulates paying every minimum plus extraMonthly each month.
// Interest accrues first; minimums are paid next; whatever budget remains goes
// to open debts in strategy order, so the minimum of a cleared debt rolls over
// to the next one. The simulation stops at MaxProjectionMonths.
func BuildPayoffPlan(debts []models.Debt, strategy Strategy, extraMonthly int64, asOf time.Time) (PayoffPlan, error) {
	if err := validateAll(debts, ValidateDebt); err != nil {
		return PayoffPlan{}, err
	}
	if extraMonthly < 0 {
		return PayoffPlan{}, invalid("payoff plan", "", "extra_monthly", "must not be negative")
	}
	ordered, err := OrderForStrategy(debts, strategy)
	if err != nil {
		return PayoffPlan{}, err
	}

	plan := PayoffPlan{Strategy: strategy, Debts: make([]DebtPayoff, len(ordered))}
	balances := make([]decimal.Decimal, len(ordered))
	interest := make([]decimal.Decimal, len(ordered))
	rates := make([]decimal.Decimal, len(ordered))
	open := 0
	for i, d := range ordered {
		plan.Debts[i] = DebtPayoff{DebtID: d.ID, Creditor: d.Creditor}
		plan.MonthlyBudget += d.MinimumPayment
		balances[i] = dec(d.CurrentBalance)
		rates[i] = monthlyRate(d.InterestRateAnnualPercent)
		if d.CurrentBalance > 0 {
			open++
		} else {
			plan.Debts[i].PayoffDate = &asOf
		}
	}
	plan.MonthlyBudget += extraMonthly

	var totalInterest, totalPaid decimal.Decimal
	for month := 1; open > 0 && month <= MaxProjectionMonths && plan.MonthlyBudget > 0; month++ {
		budget := dec(plan.MonthlyBudget)
		for i := range ordered {
			if !balances[i].IsPositive() {
				continue
			}
			accrued := balances[i].Mul(rates[i]).Round(0)
			balances[i] = balances[i].Add(accrued)
			interest[i] = interest[i].Add(accrued)
			totalInterest = totalInterest.Add(accrued)
		}
		for i, d := range ordered {
			if !balances[i].IsPositive() {
				continue
			}
			pay := decimal.Min(dec(d.MinimumPayment), balances[i], budget)
			balances[i] = balances[i].Sub(pay)
			budget = budget.Sub(pay)
			totalPaid = totalPaid.Add(pay)
		}
		for i := range ordered {
			if !budget.IsPositive() {
				break
			}
			if !balances[i].IsPositive() {
				continue
			}
			pay := decimal.Min(budget, balances[i])
			balances[i] = balances[i].Sub(pay)
			budget = budget.Sub(pay)
			totalPaid = totalPaid.Add(pay)
		}
		for i := range ordered {
			if plan.Debts[i].PayoffMonth == 0 && plan.Debts[i].PayoffDate == nil && !balances[i].IsPositive() {
				date := AddMonths(asOf, month)
				plan.Debts[i].PayoffMonth = month
				plan.Debts[i].PayoffDate = &date
				open--
			}
		}
		plan.Months = month
	}

	for i := range plan.Debts {
		plan.Debts[i].InterestPaid = cents(interest[i])
	}
	plan.TotalInterest = cents(totalInterest)
	plan.TotalPaid = cents(totalPaid)
	plan.DebtFree = open == 0
	if plan.DebtFree {
		date := AddMonths(asOf, plan.Months)
		plan.DebtFreeDate = &date
	}
	return plan, nil
}
