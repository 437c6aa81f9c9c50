package finance

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/models"
)

// billsPerMonth is how many occurrences of each frequency fall in an average month.
var billsPerMonth = map[models.BillFrequency]decimal.Decimal{
	models.BillFrequencyWeekly:    decimal.NewFromInt(52).Div(decimal.NewFromInt(12)),
	models.BillFrequencyBiweekly:  decimal.NewFromInt(26).Div(decimal.NewFromInt(12)),
	models.BillFrequencyMonthly:   decimal.NewFromInt(1),
	models.BillFrequencyQuarterly: decimal.NewFromInt(1).Div(decimal.NewFromInt(3)),
	models.BillFrequencyYearly:    decimal.NewFromInt(1).Div(decimal.NewFromInt(12)),
	models.BillFrequencyOneTime:   decimal.Zero,
}

// MonthlyEquivalent normalizes a bill's amount to an average monthly cost.
// One-time bills and unknown frequencies contribute nothing.
func MonthlyEquivalent(b models.Bill) int64 {
	factor, ok := billsPerMonth[b.Frequency]
	if !ok {
		return 0
	}
	return cents(dec(b.Amount).Mul(factor))
}

// BillDue is a bill that needs attention.
type BillDue struct {
	BillID    string          `json:"bill_id"`
	Name      string          `json:"name"`
	Category  models.Category `json:"category"`
	Amount    int64           `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
	IsAutoPay bool            `json:"is_auto_pay"`
	// DaysUntilDue is negative for overdue bills.
	DaysUntilDue int `json:"days_until_due"`
}

// BillReport summarizes recurring obligations.
type BillReport struct {
	MonthlyTotal   int64     `json:"monthly_total"`
	AutoPayMonthly int64     `json:"auto_pay_monthly"`
	OverdueAmount  int64     `json:"overdue_amount"`
	Overdue        []BillDue `json:"overdue"`
	Upcoming       []BillDue `json:"upcoming"`
}

// BillSummary reports the monthly cost of all bills, the bills that are
// overdue and the unpaid bills due within horizonDays of asOf. A bill is
// overdue when flagged so, or when it is unpaid and its due date is before
// asOf's date.
func BillSummary(bills []models.Bill, asOf time.Time, horizonDays int) (BillReport, error) {
	if err := validateAll(bills, ValidateBill); err != nil {
		return BillReport{}, err
	}

	report := BillReport{Overdue: []BillDue{}, Upcoming: []BillDue{}}
	for _, b := range bills {
		monthly := MonthlyEquivalent(b)
		report.MonthlyTotal += monthly
		if b.IsAutoPay {
			report.AutoPayMonthly += monthly
		}
		if b.Status == models.BillStatusPaid {
			continue
		}

		due := BillDue{
			BillID:       b.ID,
			Name:         b.Name,
			Category:     b.Category,
			Amount:       b.Amount,
			DueDate:      b.DueDate,
			IsAutoPay:    b.IsAutoPay,
			DaysUntilDue: civilDays(asOf, b.DueDate),
		}
		switch {
		case b.Status == models.BillStatusOverdue || due.DaysUntilDue < 0:
			report.Overdue = append(report.Overdue, due)
			report.OverdueAmount += b.Amount
		case due.DaysUntilDue <= horizonDays:
			report.Upcoming = append(report.Upcoming, due)
		}
	}

	byDueDate := func(a, b BillDue) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.BillID, b.BillID)
	}
	slices.SortFunc(report.Overdue, byDueDate)
	slices.SortFunc(report.Upcoming, byDueDate)
	return report, nil
}
