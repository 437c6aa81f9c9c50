package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"finsight/internal/finance"
)

// netWorthCmd prints the balance sheet.
type netWorthCmd struct {
	*app
	asOf string
}

func (*netWorthCmd) Name() string     { return "networth" }
func (*netWorthCmd) Synopsis() string { return "display net worth, liquidity and credit utilization" }
func (*netWorthCmd) Usage() string {
	return `finsight networth [-as-of <date>]

  Aggregates accounts, assets, holdings and debts. Depreciating assets are
  revalued at the given date.
`
}

func (c *netWorthCmd) SetFlags(f *flag.FlagSet) { asOfFlag(f, &c.asOf) }

func (c *netWorthCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseAsOf(c.asOf)
	if err != nil {
		return c.fail(err)
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	nw, err := finance.Aggregate(snap.Accounts, finance.RevalueAssets(snap.Assets, asOf), snap.Investments, snap.Debts)
	if err != nil {
		return c.fail(err)
	}
	view := netWorthView{NetWorth: nw, CreditUtilization: finance.CreditUtilization(snap.Accounts)}
	if err := c.emit(view, view.markdown); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// budgetCmd prints budget variance for a month.
type budgetCmd struct {
	*app
	month string
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "compare budgeted and actual spending for a month" }
func (*budgetCmd) Usage() string {
	return `finsight budget [-month <YYYY-MM>]

  Shows budgeted, spent and remaining amounts per category.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to report (YYYY-MM, default current)")
}

func (c *budgetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := parseMonthFlag(c.month)
	if err != nil {
		return c.fail(err)
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	report, err := finance.BudgetSummary(snap.BudgetItems, snap.Transactions, month)
	if err != nil {
		return c.fail(err)
	}
	if err := c.emit(report, func(f formatter) string { return f.budget(report) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// goalsCmd prints progress of every goal.
type goalsCmd struct {
	*app
	asOf      string
	tolerance int64
}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "display savings goal progress and projections" }
func (*goalsCmd) Usage() string {
	return `finsight goals [-as-of <date>] [-tolerance <cents>]

  Shows completion, required contribution and projected completion of goals.
`
}

func (c *goalsCmd) SetFlags(f *flag.FlagSet) {
	asOfFlag(f, &c.asOf)
	f.Int64Var(&c.tolerance, "tolerance", finance.DefaultGoalPolicy.Tolerance, "Shortfall in minor units still considered on track")
}

func (c *goalsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseAsOf(c.asOf)
	if err != nil {
		return c.fail(err)
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	goals, err := finance.GoalPolicy{Tolerance: c.tolerance}.ProgressAll(snap.Goals, asOf)
	if err != nil {
		return c.fail(err)
	}
	if err := c.emit(goals, func(f formatter) string { return f.goals(goals) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// debtsCmd prints payoff estimates and a payoff plan.
type debtsCmd struct {
	*app
	asOf     string
	strategy string
	extra    int64
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "estimate debt payoff and simulate a payoff plan" }
func (*debtsCmd) Usage() string {
	return `finsight debts [-as-of <date>] [-strategy snowball|avalanche] [-extra <cents>]

  Shows per-debt payoff estimates in strategy order, the debt-to-income
  ratio and a month-by-month plan paying minimums plus the extra amount.
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	asOfFlag(f, &c.asOf)
	f.StringVar(&c.strategy, "strategy", string(finance.StrategyAvalanche), "Payoff order: snowball or avalanche")
	f.Int64Var(&c.extra, "extra", 0, "Extra monthly payment in minor units")
}

func (c *debtsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseAsOf(c.asOf)
	if err != nil {
		return c.fail(err)
	}
	strategy, err := finance.ParseStrategy(c.strategy)
	if err != nil {
		return c.fail(usageError{err})
	}
	if c.extra < 0 {
		return c.fail(usageError{fmt.Errorf("-extra must not be negative")})
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	report, err := finance.AnalyzeDebts(snap.Debts, snap.Accounts, snap.Transactions, strategy, asOf)
	if err != nil {
		return c.fail(err)
	}
	plan, err := finance.BuildPayoffPlan(snap.Debts, strategy, c.extra, asOf)
	if err != nil {
		return c.fail(err)
	}
	view := debtsView{Report: report, Plan: plan}
	if err := c.emit(view, view.markdown); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// portfolioCmd prints investment performance.
type portfolioCmd struct {
	*app
}

func (*portfolioCmd) Name() string             { return "portfolio" }
func (*portfolioCmd) Synopsis() string         { return "display investment gains and allocation" }
func (*portfolioCmd) Usage() string            { return "finsight portfolio\n" }
func (*portfolioCmd) SetFlags(_ *flag.FlagSet) {}

func (c *portfolioCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	p, err := finance.PortfolioSummary(snap.Investments)
	if err != nil {
		return c.fail(err)
	}
	if err := c.emit(p, func(f formatter) string { return f.portfolio(p) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// assetsCmd prints depreciated asset values.
type assetsCmd struct {
	*app
	asOf string
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "display depreciated values of assets" }
func (*assetsCmd) Usage() string {
	return `finsight assets [-as-of <date>]

  Estimates each asset's value with straight-line depreciation.
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) { asOfFlag(f, &c.asOf) }

func (c *assetsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseAsOf(c.asOf)
	if err != nil {
		return c.fail(err)
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	values := finance.ValueAssets(snap.Assets, asOf)
	if err := c.emit(values, func(f formatter) string { return f.assets(values) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// billsCmd prints recurring bill totals and bills due soon.
type billsCmd struct {
	*app
	asOf    string
	horizon int
}

func (*billsCmd) Name() string     { return "bills" }
func (*billsCmd) Synopsis() string { return "display monthly bill costs and upcoming due dates" }
func (*billsCmd) Usage() string {
	return `finsight bills [-as-of <date>] [-horizon <days>]
`
}

func (c *billsCmd) SetFlags(f *flag.FlagSet) {
	asOfFlag(f, &c.asOf)
	f.IntVar(&c.horizon, "horizon", finance.DefaultBillHorizonDays, "Days ahead to list upcoming bills")
}

func (c *billsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseAsOf(c.asOf)
	if err != nil {
		return c.fail(err)
	}
	if c.horizon < 0 {
		return c.fail(usageError{fmt.Errorf("-horizon must not be negative")})
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	report, err := finance.BillSummary(snap.Bills, asOf, c.horizon)
	if err != nil {
		return c.fail(err)
	}
	if err := c.emit(report, func(f formatter) string { return f.bills(report) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// cashFlowCmd prints income against expenses for a month or a date range.
type cashFlowCmd struct {
	*app
	month string
	from  string
	to    string
}

func (*cashFlowCmd) Name() string     { return "cashflow" }
func (*cashFlowCmd) Synopsis() string { return "display income, expenses and net cash flow" }
func (*cashFlowCmd) Usage() string {
	return `finsight cashflow [-month <YYYY-MM>] [-from <date> -to <date>]

  Sums income and expense transactions. Transfers are not counted. With
  -from and -to the window is [from, to), otherwise the calendar month.
`
}

func (c *cashFlowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to report (YYYY-MM, default current)")
	f.StringVar(&c.from, "from", "", "Start of the window, inclusive (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "End of the window, exclusive (YYYY-MM-DD)")
}

func (c *cashFlowCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := c.window()
	if err != nil {
		return c.fail(err)
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	var cf finance.CashFlowSummary
	if window == nil {
		month, err := parseMonthFlag(c.month)
		if err != nil {
			return c.fail(err)
		}
		cf = finance.MonthlyCashFlow(snap.Transactions, month)
	} else {
		cf = finance.CashFlow(snap.Transactions, window[0], window[1])
	}
	if err := c.emit(cf, func(f formatter) string { return f.cashFlowReport(cf) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

// window returns the -from/-to range, or nil when neither flag is set.
func (c *cashFlowCmd) window() ([]time.Time, error) {
	if c.from == "" && c.to == "" {
		return nil, nil
	}
	if c.from == "" || c.to == "" || c.month != "" {
		return nil, usageError{fmt.Errorf("-from and -to must be set together and without -month")}
	}
	from, err := time.Parse(time.DateOnly, c.from)
	if err != nil {
		return nil, usageError{fmt.Errorf("invalid -from %q: use YYYY-MM-DD", c.from)}
	}
	to, err := time.Parse(time.DateOnly, c.to)
	if err != nil {
		return nil, usageError{fmt.Errorf("invalid -to %q: use YYYY-MM-DD", c.to)}
	}
	if !to.After(from) {
		return nil, usageError{fmt.Errorf("-to must be after -from")}
	}
	return []time.Time{from, to}, nil
}

// reportCmd prints every section together.
type reportCmd struct {
	*app
	asOf     string
	strategy string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full financial report" }
func (*reportCmd) Usage() string {
	return `finsight report [-as-of <date>] [-strategy snowball|avalanche]

  Validates the whole snapshot, then prints net worth, cash flow, budget,
  goals, debts, portfolio, assets and bills.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	asOfFlag(f, &c.asOf)
	f.StringVar(&c.strategy, "strategy", string(finance.StrategyAvalanche), "Payoff order: snowball or avalanche")
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseAsOf(c.asOf)
	if err != nil {
		return c.fail(err)
	}
	strategy, err := finance.ParseStrategy(c.strategy)
	if err != nil {
		return c.fail(usageError{err})
	}
	snap, err := c.load()
	if err != nil {
		return c.fail(err)
	}

	opts := finance.DefaultReportOptions()
	opts.Strategy = strategy
	report, err := finance.BuildReport(snap, asOf, opts)
	if err != nil {
		return c.fail(err)
	}
	if err := c.emit(report, func(f formatter) string { return f.report(report) }); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

func parseMonthFlag(s string) (finance.Month, error) {
	if s == "" {
		return finance.MonthOf(time.Now()), nil
	}
	m, err := finance.ParseMonth(s)
	if err != nil {
		return finance.Month{}, usageError{err}
	}
	return m, nil
}
