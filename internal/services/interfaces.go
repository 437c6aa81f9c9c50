package services

import (
	"time"

	"finsight/internal/finance"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// SnapshotServicer reads a user's financial records from the store.
type SnapshotServicer interface {
	LoadSnapshot(userID string) (*finance.Snapshot, error)
	UserIDs() ([]string, error)
}

// InsightServicer runs the finance engine over a user's records.
type InsightServicer interface {
	NetWorth(userID string, asOf time.Time) (*finance.NetWorth, error)
	CashFlow(userID string, month finance.Month) (*finance.CashFlowSummary, error)
	Budget(userID string, month finance.Month) (*finance.BudgetReport, error)
	Goals(userID string, asOf time.Time) ([]finance.GoalProgress, error)
	GoalProgress(userID, goalID string, asOf time.Time) (*finance.GoalProgress, error)
	Debts(userID string, strategy finance.Strategy, asOf time.Time) (*finance.DebtReport, error)
	PayoffPlan(userID string, strategy finance.Strategy, extraMonthly int64, asOf time.Time) (*finance.PayoffPlan, error)
	Portfolio(userID string) (*finance.Portfolio, error)
	AssetValuations(userID string, asOf time.Time) ([]finance.AssetValuation, error)
	AssetValuation(userID, assetID string, asOf time.Time) (*finance.AssetValuation, error)
	Bills(userID string, asOf time.Time) (*finance.BillReport, error)
	Report(userID string, asOf time.Time) (*finance.Report, error)
	Evaluate(snapshot finance.Snapshot, asOf time.Time) (*finance.Report, error)
}

// NetWorthHistoryServicer records and reads the net worth time series.
type NetWorthHistoryServicer interface {
	RecordSnapshots(recordedAt time.Time) (int, error)
	GetHistory(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}
