package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"

	"finsight/internal/finance"
)

// formatter renders engine results as Markdown.
type formatter struct {
	currency string
}

func (f formatter) money(cents int64) string {
	return money.New(cents, f.currency).Display()
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func optPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return percent(*v)
}

func optDate(t *time.Time, none string) string {
	if t == nil {
		return none
	}
	return t.Format(time.DateOnly)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// table writes a Markdown table with the given header and rows.
func table(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	b.WriteString("\n")
}

type netWorthView struct {
	finance.NetWorth
	CreditUtilization *float64 `json:"credit_utilization"`
}

func (v netWorthView) markdown(f formatter) string {
	var b strings.Builder
	b.WriteString("# Net Worth\n\n")
	f.netWorthTable(&b, v.NetWorth, v.CreditUtilization)
	return b.String()
}

func (f formatter) netWorthTable(b *strings.Builder, nw finance.NetWorth, utilization *float64) {
	table(b, []string{"", "Amount"}, [][]string{
		{"Total assets", f.money(nw.TotalAssets)},
		{"Liquid assets", f.money(nw.LiquidAssets)},
		{"Investment assets", f.money(nw.InvestmentAssets)},
		{"Total liabilities", f.money(nw.TotalLiabilities)},
		{"**Net worth**", "**" + f.money(nw.NetWorth) + "**"},
	})
	fmt.Fprintf(b, "Credit utilization: %s\n\n", optPercent(utilization))
}

func (f formatter) cashFlow(b *strings.Builder, cf finance.CashFlowSummary) {
	table(b, []string{"Income", "Expenses", "Net"}, [][]string{
		{f.money(cf.Income), f.money(cf.Expenses), f.money(cf.Net)},
	})
}

func (f formatter) cashFlowReport(cf finance.CashFlowSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Cash flow %s to %s\n\n", cf.From.Format(time.DateOnly), cf.To.Format(time.DateOnly))
	f.cashFlow(&b, cf)
	return b.String()
}

func (f formatter) budget(r finance.BudgetReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Budget %s\n\n", r.Month)
	f.budgetBody(&b, r)
	return b.String()
}

func (f formatter) budgetBody(b *strings.Builder, r finance.BudgetReport) {
	if len(r.PerCategory) == 0 {
		b.WriteString("No budget for this month.\n\n")
		return
	}
	rows := make([][]string, 0, len(r.PerCategory))
	for _, c := range r.PerCategory {
		label := c.Label
		if c.OverBudget {
			label += " (over)"
		}
		rows = append(rows, []string{label, f.money(c.Budgeted), f.money(c.Spent), f.money(c.Remaining), optPercent(c.PercentUsed)})
	}
	table(b, []string{"Category", "Budgeted", "Spent", "Remaining", "Used"}, rows)
	fmt.Fprintf(b, "Total budgeted %s, spent %s, variance %s.\n\n",
		f.money(r.TotalBudgeted), f.money(r.TotalSpent), f.money(r.Variance))
	if r.UnbudgetedSpent > 0 {
		fmt.Fprintf(b, "Spent outside the budget: %s.\n\n", f.money(r.UnbudgetedSpent))
	}
}

func (f formatter) goals(goals []finance.GoalProgress) string {
	var b strings.Builder
	b.WriteString("# Goals\n\n")
	f.goalsBody(&b, goals)
	return b.String()
}

func (f formatter) goalsBody(b *strings.Builder, goals []finance.GoalProgress) {
	if len(goals) == 0 {
		b.WriteString("No goals.\n\n")
		return
	}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		status := "behind"
		switch {
		case g.Completed:
			status = "completed"
		case g.Overdue:
			status = "overdue"
		case g.OnTrack:
			status = "on track"
		}
		rows = append(rows, []string{
			g.Name, g.Priority.Label(), percent(g.PercentComplete), f.money(g.AmountRemaining),
			f.money(g.RequiredMonthlyContribution), optDate(g.ProjectedCompletionDate, "never"), status,
		})
	}
	table(b, []string{"Goal", "Priority", "Complete", "Remaining", "Required / month", "Projected", "Status"}, rows)
}

type debtsView struct {
	Report finance.DebtReport `json:"report"`
	Plan   finance.PayoffPlan `json:"plan"`
}

func (v debtsView) markdown(f formatter) string {
	var b strings.Builder
	b.WriteString("# Debts\n\n")
	f.debtsBody(&b, v.Report)
	b.WriteString("## Payoff plan\n\n")
	f.planBody(&b, v.Plan)
	return b.String()
}

func (f formatter) debtsBody(b *strings.Builder, r finance.DebtReport) {
	if len(r.Debts) == 0 {
		b.WriteString("No debts.\n\n")
		return
	}
	rows := make([][]string, 0, len(r.Debts))
	for _, d := range r.Debts {
		rows = append(rows, []string{
			d.Creditor, d.Type.Label(), f.money(d.CurrentBalance), percent(d.InterestRateAnnualPercent),
			f.money(d.MinimumPayment), optDate(d.Simple.ProjectedPayoffDate, "never"),
			optDate(d.Amortized.ProjectedPayoffDate, "never"), f.money(d.Amortized.TotalInterest),
		})
	}
	table(b, []string{"Creditor", "Type", "Balance", "APR", "Minimum", "Payoff (simple)", "Payoff (amortized)", "Interest"}, rows)
	fmt.Fprintf(b, "Strategy %s. Total balance %s, minimum payments %s per month. Debt-to-income %s on %s monthly income.\n\n",
		r.Strategy, f.money(r.TotalBalance), f.money(r.TotalMinimumPayments),
		percent(r.DebtToIncomePercent), f.money(r.MonthlyIncome))
}

func (f formatter) planBody(b *strings.Builder, p finance.PayoffPlan) {
	if !p.DebtFree {
		fmt.Fprintf(b, "A budget of %s per month does not pay off every debt.\n\n", f.money(p.MonthlyBudget))
		return
	}
	fmt.Fprintf(b, "Paying %s per month, debt free in %d months (%s). Interest paid %s of %s total.\n\n",
		f.money(p.MonthlyBudget), p.Months, optDate(p.DebtFreeDate, "n/a"), f.money(p.TotalInterest), f.money(p.TotalPaid))
	rows := make([][]string, 0, len(p.Debts))
	for _, d := range p.Debts {
		rows = append(rows, []string{d.Creditor, fmt.Sprint(d.PayoffMonth), optDate(d.PayoffDate, "never"), f.money(d.InterestPaid)})
	}
	table(b, []string{"Creditor", "Month", "Paid off", "Interest"}, rows)
}

func (f formatter) portfolio(p finance.Portfolio) string {
	var b strings.Builder
	b.WriteString("# Portfolio\n\n")
	f.portfolioBody(&b, p)
	return b.String()
}

func (f formatter) portfolioBody(b *strings.Builder, p finance.Portfolio) {
	if len(p.Holdings) == 0 {
		b.WriteString("No holdings.\n\n")
		return
	}
	rows := make([][]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		rows = append(rows, []string{h.Symbol, f.money(h.CostBasis), f.money(h.MarketValue), f.money(h.GainLoss), percent(h.ReturnPercent), percent(h.AllocationPercent)})
	}
	table(b, []string{"Symbol", "Cost", "Value", "Gain", "Return", "Allocation"}, rows)
	fmt.Fprintf(b, "Total value %s on cost %s, return %s.\n\n", f.money(p.TotalValue), f.money(p.TotalCost), percent(p.ReturnPercent))
}

func (f formatter) assets(values []finance.AssetValuation) string {
	var b strings.Builder
	b.WriteString("# Assets\n\n")
	f.assetsBody(&b, values)
	return b.String()
}

func (f formatter) assetsBody(b *strings.Builder, values []finance.AssetValuation) {
	if len(values) == 0 {
		b.WriteString("No assets.\n\n")
		return
	}
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		remaining := "-"
		if v.Depreciating {
			remaining = percent(v.PercentRemaining)
		}
		rows = append(rows, []string{v.Name, v.Type.Label(), f.money(v.EstimatedValue), remaining})
	}
	table(b, []string{"Asset", "Type", "Value", "Remaining"}, rows)
}

func (f formatter) bills(r finance.BillReport) string {
	var b strings.Builder
	b.WriteString("# Bills\n\n")
	f.billsBody(&b, r)
	return b.String()
}

func (f formatter) billsBody(b *strings.Builder, r finance.BillReport) {
	fmt.Fprintf(b, "Monthly total %s, of which %s on auto-pay.\n\n", f.money(r.MonthlyTotal), f.money(r.AutoPayMonthly))
	if len(r.Overdue) > 0 {
		fmt.Fprintf(b, "**Overdue: %s**\n\n", f.money(r.OverdueAmount))
		f.dueTable(b, r.Overdue)
	}
	if len(r.Upcoming) > 0 {
		b.WriteString("Upcoming:\n\n")
		f.dueTable(b, r.Upcoming)
	}
}

func (f formatter) dueTable(b *strings.Builder, bills []finance.BillDue) {
	rows := make([][]string, 0, len(bills))
	for _, d := range bills {
		rows = append(rows, []string{d.Name, f.money(d.Amount), d.DueDate.Format(time.DateOnly), fmt.Sprint(d.DaysUntilDue), yesNo(d.IsAutoPay)})
	}
	table(b, []string{"Bill", "Amount", "Due", "Days", "Auto-pay"}, rows)
}

func (f formatter) report(r finance.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Financial report %s\n\n", r.AsOf.Format(time.DateOnly))
	b.WriteString("## Net worth\n\n")
	f.netWorthTable(&b, r.NetWorth, r.CreditUtilization)
	fmt.Fprintf(&b, "## Cash flow %s\n\n", finance.MonthOf(r.AsOf))
	f.cashFlow(&b, r.CashFlow)
	fmt.Fprintf(&b, "## Budget %s\n\n", r.Budget.Month)
	f.budgetBody(&b, r.Budget)
	b.WriteString("## Goals\n\n")
	f.goalsBody(&b, r.Goals)
	b.WriteString("## Debts\n\n")
	f.debtsBody(&b, r.Debts)
	b.WriteString("## Portfolio\n\n")
	f.portfolioBody(&b, r.Portfolio)
	b.WriteString("## Assets\n\n")
	f.assetsBody(&b, r.Assets)
	b.WriteString("## Bills\n\n")
	f.billsBody(&b, r.Bills)
	return b.String()
}
