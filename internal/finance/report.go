package finance

import (
	"time"

	"finsight/internal/models"
)

// DefaultBillHorizonDays is how far ahead BuildReport looks for upcoming bills.
const DefaultBillHorizonDays = 30

// DebtEstimate pairs the simple and the amortized projection of one debt.
type DebtEstimate struct {
	DebtID                    string            `json:"debt_id"`
	Creditor                  string            `json:"creditor"`
	Type                      models.DebtType   `json:"type"`
	CurrentBalance            int64             `json:"current_balance"`
	InterestRateAnnualPercent float64           `json:"interest_rate_annual_percent"`
	MinimumPayment            int64             `json:"minimum_payment"`
	Simple                    PayoffEstimate    `json:"simple"`
	Amortized                 AmortizedEstimate `json:"amortized"`
}

// DebtReport is the payoff outlook of all debts in strategy order.
type DebtReport struct {
	Strategy             Strategy       `json:"strategy"`
	Debts                []DebtEstimate `json:"debts"`
	TotalBalance         int64          `json:"total_balance"`
	TotalMinimumPayments int64          `json:"total_minimum_payments"`
	// MonthlyIncome is the income of the last complete month before asOf.
	MonthlyIncome       int64   `json:"monthly_income"`
	DebtToIncomePercent float64 `json:"debt_to_income_percent"`
}

// AnalyzeDebts orders debts by strategy and projects each of them. The
// debt-to-income ratio uses the income of the calendar month before asOf.
func AnalyzeDebts(debts []models.Debt, accounts []models.Account, transactions []models.Transaction, strategy Strategy, asOf time.Time) (DebtReport, error) {
	if err := validateAll(debts, ValidateDebt); err != nil {
		return DebtReport{}, err
	}
	ordered, err := OrderForStrategy(debts, strategy)
	if err != nil {
		return DebtReport{}, err
	}

	report := DebtReport{Strategy: strategy, Debts: make([]DebtEstimate, 0, len(ordered))}
	for _, d := range ordered {
		report.TotalBalance += d.CurrentBalance
		report.Debts = append(report.Debts, DebtEstimate{
			DebtID:                    d.ID,
			Creditor:                  d.Creditor,
			Type:                      d.Type,
			CurrentBalance:            d.CurrentBalance,
			InterestRateAnnualPercent: d.InterestRateAnnualPercent,
			MinimumPayment:            d.MinimumPayment,
			Simple:                    SimplePayoffEstimate(d, asOf),
			Amortized:                 AmortizedPayoffEstimate(d, asOf),
		})
	}
	report.TotalMinimumPayments = TotalMinimumPayments(debts, accounts)
	report.MonthlyIncome = MonthlyCashFlow(transactions, MonthOf(asOf).Prev()).Income
	report.DebtToIncomePercent = DebtToIncomeRatio(report.TotalMinimumPayments, report.MonthlyIncome)
	return report, nil
}

// ReportOptions tunes BuildReport.
type ReportOptions struct {
	Goals           GoalPolicy
	BillHorizonDays int
	Strategy        Strategy
}

// DefaultReportOptions returns the options used when none are configured.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Goals:           DefaultGoalPolicy,
		BillHorizonDays: DefaultBillHorizonDays,
		Strategy:        StrategyAvalanche,
	}
}

// Report is every derived figure of a snapshot at one point in time.
type Report struct {
	AsOf              time.Time        `json:"as_of"`
	NetWorth          NetWorth         `json:"net_worth"`
	CashFlow          CashFlowSummary  `json:"cash_flow"`
	Budget            BudgetReport     `json:"budget"`
	Goals             []GoalProgress   `json:"goals"`
	Debts             DebtReport       `json:"debts"`
	Portfolio         Portfolio        `json:"portfolio"`
	Assets            []AssetValuation `json:"assets"`
	Bills             BillReport       `json:"bills"`
	CreditUtilization *float64         `json:"credit_utilization"`
}

// Section fills one part of a Report. Each section writes a distinct field,
// so sections of the same report may run concurrently.
type Section struct {
	Name string
	Fill func(r *Report) error
}

// Sections returns the report sections for a snapshot. Net worth uses assets
// revalued through the depreciation calculator; cash flow and budget cover
// the calendar month of asOf.
func Sections(s Snapshot, asOf time.Time, opts ReportOptions) []Section {
	month := MonthOf(asOf)
	return []Section{
		{Name: "net_worth", Fill: func(r *Report) (err error) {
			r.NetWorth, err = Aggregate(s.Accounts, RevalueAssets(s.Assets, asOf), s.Investments, s.Debts)
			r.CreditUtilization = CreditUtilization(s.Accounts)
			return err
		}},
		{Name: "cash_flow", Fill: func(r *Report) error {
			r.CashFlow = MonthlyCashFlow(s.Transactions, month)
			return nil
		}},
		{Name: "budget", Fill: func(r *Report) (err error) {
			r.Budget, err = BudgetSummary(s.BudgetItems, s.Transactions, month)
			return err
		}},
		{Name: "goals", Fill: func(r *Report) (err error) {
			r.Goals, err = opts.Goals.ProgressAll(s.Goals, asOf)
			return err
		}},
		{Name: "debts", Fill: func(r *Report) (err error) {
			r.Debts, err = AnalyzeDebts(s.Debts, s.Accounts, s.Transactions, opts.Strategy, asOf)
			return err
		}},
		{Name: "portfolio", Fill: func(r *Report) (err error) {
			r.Portfolio, err = PortfolioSummary(s.Investments)
			return err
		}},
		{Name: "assets", Fill: func(r *Report) error {
			r.Assets = ValueAssets(s.Assets, asOf)
			return nil
		}},
		{Name: "bills", Fill: func(r *Report) (err error) {
			r.Bills, err = BillSummary(s.Bills, asOf, opts.BillHorizonDays)
			return err
		}},
	}
}

// BuildReport validates the snapshot and fills every section in order.
func BuildReport(s Snapshot, asOf time.Time, opts ReportOptions) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}
	r := Report{AsOf: asOf}
	for _, sec := range Sections(s, asOf, opts) {
		if err := sec.Fill(&r); err != nil {
			return Report{}, err
		}
	}
	return r, nil
}
