package finance

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/models"
)

// MaxProjectionMonths bounds amortized projections. A debt still open after
// this many months is reported as never paid off.
const MaxProjectionMonths = 1200

// Strategy is a debt payoff prioritization.
type Strategy string

const (
	// StrategySnowball pays the smallest balance first.
	StrategySnowball Strategy = "snowball"
	// StrategyAvalanche pays the highest interest rate first.
	StrategyAvalanche Strategy = "avalanche"
)

// ParseStrategy parses a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySnowball:
		return StrategySnowball, nil
	case StrategyAvalanche:
		return StrategyAvalanche, nil
	}
	return "", invalid("strategy", "", "name", "must be snowball or avalanche")
}

// PayoffEstimate is the payoff horizon of a single debt.
type PayoffEstimate struct {
	DebtID          string `json:"debt_id"`
	MonthsRemaining int    `json:"months_remaining"`
	// PaysOff is false when the debt never resolves under the model; then
	// MonthsRemaining is 0 and ProjectedPayoffDate is nil.
	PaysOff             bool       `json:"pays_off"`
	ProjectedPayoffDate *time.Time `json:"projected_payoff_date"`
}

// SimplePayoffEstimate divides the balance by the minimum payment and rounds
// up. Interest accrual is ignored, so true payoff of an
// interest-bearing debt takes longer; see AmortizedPayoffEstimate.
func SimplePayoffEstimate(d models.Debt, asOf time.Time) PayoffEstimate {
	est := PayoffEstimate{DebtID: d.ID}
	switch {
	case d.CurrentBalance <= 0:
		est.PaysOff = true
	case d.MinimumPayment > 0:
		est.PaysOff = true
		est.MonthsRemaining = int((d.CurrentBalance + d.MinimumPayment - 1) / d.MinimumPayment)
	default:
		return est
	}
	date := AddMonths(asOf, est.MonthsRemaining)
	est.ProjectedPayoffDate = &date
	return est
}

// AmortizedEstimate is a payoff projection that accrues interest.
type AmortizedEstimate struct {
	PayoffEstimate
	TotalInterest int64 `json:"total_interest"`
	TotalPaid     int64 `json:"total_paid"`
}

// AmortizedPayoffEstimate projects payoff paying the minimum payment every
// month while interest compounds monthly at APR/12. Interest is rounded to
// minor units each month. A payment that does not exceed the first month's
// interest never resolves the debt.
func AmortizedPayoffEstimate(d models.Debt, asOf time.Time) AmortizedEstimate {
	est := AmortizedEstimate{PayoffEstimate: PayoffEstimate{DebtID: d.ID}}
	if d.CurrentBalance <= 0 {
		est.PaysOff = true
		date := asOf
		est.ProjectedPayoffDate = &date
		return est
	}

	rate := monthlyRate(d.InterestRateAnnualPercent)
	balance := dec(d.CurrentBalance)
	payment := dec(d.MinimumPayment)
	if !payment.GreaterThan(balance.Mul(rate).Round(0)) {
		return est
	}

	var interest, paid decimal.Decimal
	for month := 1; month <= MaxProjectionMonths; month++ {
		accrued := balance.Mul(rate).Round(0)
		interest = interest.Add(accrued)
		balance = balance.Add(accrued)
		pay := decimal.Min(payment, balance)
		paid = paid.Add(pay)
		balance = balance.Sub(pay)
		if !balance.IsPositive() {
			est.PaysOff = true
			est.MonthsRemaining = month
			est.TotalInterest = cents(interest)
			est.TotalPaid = cents(paid)
			date := AddMonths(asOf, month)
			est.ProjectedPayoffDate = &date
			return est
		}
	}
	return est
}

func monthlyRate(annualPercent float64) decimal.Decimal {
	return decimal.NewFromFloat(annualPercent).Div(decimal.NewFromInt(1200))
}

// OrderForStrategy returns a sorted copy of debts. Snowball sorts by ascending
// current balance, avalanche by descending interest rate; ties are broken by
// ascending id.
func OrderForStrategy(debts []models.Debt, strategy Strategy) ([]models.Debt, error) {
	var compare func(a, b models.Debt) int
	switch strategy {
	case StrategySnowball:
		compare = func(a, b models.Debt) int {
			if c := cmp.Compare(a.CurrentBalance, b.CurrentBalance); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		}
	case StrategyAvalanche:
		compare = func(a, b models.Debt) int {
			if c := cmp.Compare(b.InterestRateAnnualPercent, a.InterestRateAnnualPercent); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		}
	default:
		return nil, invalid("strategy", "", "name", "must be snowball or avalanche")
	}
	ordered := slices.Clone(debts)
	slices.SortStableFunc(ordered, compare)
	return ordered, nil
}

// DebtToIncomeRatio returns minimum payments as a percentage of monthly
// income. Zero or negative income reports 0; callers that need to tell an
// unknown income apart must check it themselves.
func DebtToIncomeRatio(totalMinimumPayments, monthlyIncome int64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return percentOf(totalMinimumPayments, monthlyIncome)
}

// TotalMinimumPayments sums the minimum payments of open debts and of credit
// card accounts carrying a balance.
func TotalMinimumPayments(debts []models.Debt, accounts []models.Account) int64 {
	var total int64
	for _, d := range debts {
		if d.CurrentBalance > 0 {
			total += d.MinimumPayment
		}
	}
	for _, a := range accounts {
		if a.Type.IsCredit() && a.Balance > 0 && a.MinimumPayment != nil {
			total += *a.MinimumPayment
		}
	}
	return total
}
