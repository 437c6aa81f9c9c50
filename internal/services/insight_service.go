package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "finsight/internal/errors"
	"finsight/internal/finance"
	"finsight/internal/metrics"
)

// insightService runs the finance engine over snapshots read from the store.
type insightService struct {
	snapshots SnapshotServicer
	opts      finance.ReportOptions
	metrics   *metrics.Collector
}

// NewInsightService creates a new InsightServicer. collector may be nil.
func NewInsightService(snapshots SnapshotServicer, opts finance.ReportOptions, collector *metrics.Collector) InsightServicer {
	return &insightService{snapshots: snapshots, opts: opts, metrics: collector}
}

// compute runs fn over the user's snapshot and records the outcome under section.
func compute[T any](s *insightService, section, userID string, fn func(finance.Snapshot) (T, error)) (T, error) {
	var zero T
	snap, err := s.snapshots.LoadSnapshot(userID)
	if err != nil {
		return zero, err
	}
	out, err := fn(*snap)
	s.metrics.ObserveComputation(section, err)
	if err != nil {
		return zero, apperrors.FromFinance(err)
	}
	return out, nil
}

func (s *insightService) strategy(strategy finance.Strategy) finance.Strategy {
	if strategy == "" {
		return s.opts.Strategy
	}
	return strategy
}

// NetWorth aggregates the balance sheet with assets revalued by depreciation.
func (s *insightService) NetWorth(userID string, asOf time.Time) (*finance.NetWorth, error) {
	return compute(s, "net_worth", userID, func(snap finance.Snapshot) (*finance.NetWorth, error) {
		nw, err := finance.Aggregate(snap.Accounts, finance.RevalueAssets(snap.Assets, asOf), snap.Investments, snap.Debts)
		return &nw, err
	})
}

// CashFlow sums income and expenses for a calendar month.
func (s *insightService) CashFlow(userID string, month finance.Month) (*finance.CashFlowSummary, error) {
	return compute(s, "cash_flow", userID, func(snap finance.Snapshot) (*finance.CashFlowSummary, error) {
		cf := finance.MonthlyCashFlow(snap.Transactions, month)
		return &cf, nil
	})
}

// Budget compares a month's budget items against its expenses.
func (s *insightService) Budget(userID string, month finance.Month) (*finance.BudgetReport, error) {
	return compute(s, "budget", userID, func(snap finance.Snapshot) (*finance.BudgetReport, error) {
		report, err := finance.BudgetSummary(snap.BudgetItems, snap.Transactions, month)
		return &report, err
	})
}

// Goals projects every goal of the user.
func (s *insightService) Goals(userID string, asOf time.Time) ([]finance.GoalProgress, error) {
	return compute(s, "goals", userID, func(snap finance.Snapshot) ([]finance.GoalProgress, error) {
		return s.opts.Goals.ProgressAll(snap.Goals, asOf)
	})
}

// GoalProgress projects a single goal.
func (s *insightService) GoalProgress(userID, goalID string, asOf time.Time) (*finance.GoalProgress, error) {
	return compute(s, "goals", userID, func(snap finance.Snapshot) (*finance.GoalProgress, error) {
		for _, g := range snap.Goals {
			if g.ID == goalID {
				gp, err := s.opts.Goals.Progress(g, asOf)
				return &gp, err
			}
		}
		return nil, apperrors.ErrGoalNotFound
	})
}

// Debts orders and projects the user's debts. An empty strategy uses the configured default.
func (s *insightService) Debts(userID string, strategy finance.Strategy, asOf time.Time) (*finance.DebtReport, error) {
	return compute(s, "debts", userID, func(snap finance.Snapshot) (*finance.DebtReport, error) {
		report, err := finance.AnalyzeDebts(snap.Debts, snap.Accounts, snap.Transactions, s.strategy(strategy), asOf)
		return &report, err
	})
}

// PayoffPlan simulates paying down all debts with extraMonthly on top of the minimums.
func (s *insightService) PayoffPlan(userID string, strategy finance.Strategy, extraMonthly int64, asOf time.Time) (*finance.PayoffPlan, error) {
	return compute(s, "payoff_plan", userID, func(snap finance.Snapshot) (*finance.PayoffPlan, error) {
		plan, err := finance.BuildPayoffPlan(snap.Debts, s.strategy(strategy), extraMonthly, asOf)
		return &plan, err
	})
}

// Portfolio summarizes the performance of the user's holdings.
func (s *insightService) Portfolio(userID string) (*finance.Portfolio, error) {
	return compute(s, "portfolio", userID, func(snap finance.Snapshot) (*finance.Portfolio, error) {
		p, err := finance.PortfolioSummary(snap.Investments)
		return &p, err
	})
}

// AssetValuations estimates the depreciated value of every asset.
func (s *insightService) AssetValuations(userID string, asOf time.Time) ([]finance.AssetValuation, error) {
	return compute(s, "assets", userID, func(snap finance.Snapshot) ([]finance.AssetValuation, error) {
		return finance.ValueAssets(snap.Assets, asOf), nil
	})
}

// AssetValuation estimates the depreciated value of a single asset.
func (s *insightService) AssetValuation(userID, assetID string, asOf time.Time) (*finance.AssetValuation, error) {
	return compute(s, "assets", userID, func(snap finance.Snapshot) (*finance.AssetValuation, error) {
		for _, a := range snap.Assets {
			if a.ID == assetID {
				v := finance.ValueAsset(a, asOf)
				return &v, nil
			}
		}
		return nil, apperrors.ErrAssetNotFound
	})
}

// Bills reports recurring costs plus overdue and upcoming bills.
func (s *insightService) Bills(userID string, asOf time.Time) (*finance.BillReport, error) {
	return compute(s, "bills", userID, func(snap finance.Snapshot) (*finance.BillReport, error) {
		report, err := finance.BillSummary(snap.Bills, asOf, s.opts.BillHorizonDays)
		return &report, err
	})
}

// Report builds every section for the user's stored records.
func (s *insightService) Report(userID string, asOf time.Time) (*finance.Report, error) {
	snap, err := s.snapshots.LoadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(*snap, asOf)
}

// Evaluate builds every section for a caller-supplied snapshot. Sections run
// concurrently; each writes its own field of the report and only reads the
// snapshot.
func (s *insightService) Evaluate(snap finance.Snapshot, asOf time.Time) (*finance.Report, error) {
	if err := snap.Validate(); err != nil {
		s.metrics.ObserveComputation("report", err)
		return nil, apperrors.FromFinance(err)
	}

	report := finance.Report{AsOf: asOf}
	var g errgroup.Group
	for _, section := range finance.Sections(snap, asOf, s.opts) {
		g.Go(func() error {
			err := section.Fill(&report)
			s.metrics.ObserveComputation(section.Name, err)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.FromFinance(err)
	}
	s.metrics.ObserveComputation("report", nil)
	return &report, nil
}
