package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/finance"
	"finsight/internal/middleware"
	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/services"
	"finsight/internal/validator"
)

const testUserID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"

var errUnexpected = errors.New("connection reset")

// --- mock insight service ---

type mockInsightService struct {
	netWorthFn        func(userID string, asOf time.Time) (*finance.NetWorth, error)
	cashFlowFn        func(userID string, month finance.Month) (*finance.CashFlowSummary, error)
	budgetFn          func(userID string, month finance.Month) (*finance.BudgetReport, error)
	goalsFn           func(userID string, asOf time.Time) ([]finance.GoalProgress, error)
	goalProgressFn    func(userID, goalID string, asOf time.Time) (*finance.GoalProgress, error)
	debtsFn           func(userID string, strategy finance.Strategy, asOf time.Time) (*finance.DebtReport, error)
	payoffPlanFn      func(userID string, strategy finance.Strategy, extra int64, asOf time.Time) (*finance.PayoffPlan, error)
	portfolioFn       func(userID string) (*finance.Portfolio, error)
	assetValuationsFn func(userID string, asOf time.Time) ([]finance.AssetValuation, error)
	assetValuationFn  func(userID, assetID string, asOf time.Time) (*finance.AssetValuation, error)
	billsFn           func(userID string, asOf time.Time) (*finance.BillReport, error)
	reportFn          func(userID string, asOf time.Time) (*finance.Report, error)
	evaluateFn        func(snapshot finance.Snapshot, asOf time.Time) (*finance.Report, error)
}

var _ services.InsightServicer = (*mockInsightService)(nil)

func (m *mockInsightService) NetWorth(userID string, asOf time.Time) (*finance.NetWorth, error) {
	if m.netWorthFn != nil {
		return m.netWorthFn(userID, asOf)
	}
	return &finance.NetWorth{}, nil
}

func (m *mockInsightService) CashFlow(userID string, month finance.Month) (*finance.CashFlowSummary, error) {
	if m.cashFlowFn != nil {
		return m.cashFlowFn(userID, month)
	}
	return &finance.CashFlowSummary{}, nil
}

func (m *mockInsightService) Budget(userID string, month finance.Month) (*finance.BudgetReport, error) {
	if m.budgetFn != nil {
		return m.budgetFn(userID, month)
	}
	return &finance.BudgetReport{}, nil
}

func (m *mockInsightService) Goals(userID string, asOf time.Time) ([]finance.GoalProgress, error) {
	if m.goalsFn != nil {
		return m.goalsFn(userID, asOf)
	}
	return []finance.GoalProgress{}, nil
}

func (m *mockInsightService) GoalProgress(userID, goalID string, asOf time.Time) (*finance.GoalProgress, error) {
	if m.goalProgressFn != nil {
		return m.goalProgressFn(userID, goalID, asOf)
	}
	return &finance.GoalProgress{GoalID: goalID}, nil
}

func (m *mockInsightService) Debts(userID string, strategy finance.Strategy, asOf time.Time) (*finance.DebtReport, error) {
	if m.debtsFn != nil {
		return m.debtsFn(userID, strategy, asOf)
	}
	return &finance.DebtReport{}, nil
}

func (m *mockInsightService) PayoffPlan(userID string, strategy finance.Strategy, extra int64, asOf time.Time) (*finance.PayoffPlan, error) {
	if m.payoffPlanFn != nil {
		return m.payoffPlanFn(userID, strategy, extra, asOf)
	}
	return &finance.PayoffPlan{}, nil
}

func (m *mockInsightService) Portfolio(userID string) (*finance.Portfolio, error) {
	if m.portfolioFn != nil {
		return m.portfolioFn(userID)
	}
	return &finance.Portfolio{}, nil
}

func (m *mockInsightService) AssetValuations(userID string, asOf time.Time) ([]finance.AssetValuation, error) {
	if m.assetValuationsFn != nil {
		return m.assetValuationsFn(userID, asOf)
	}
	return []finance.AssetValuation{}, nil
}

func (m *mockInsightService) AssetValuation(userID, assetID string, asOf time.Time) (*finance.AssetValuation, error) {
	if m.assetValuationFn != nil {
		return m.assetValuationFn(userID, assetID, asOf)
	}
	return &finance.AssetValuation{AssetID: assetID}, nil
}

func (m *mockInsightService) Bills(userID string, asOf time.Time) (*finance.BillReport, error) {
	if m.billsFn != nil {
		return m.billsFn(userID, asOf)
	}
	return &finance.BillReport{}, nil
}

func (m *mockInsightService) Report(userID string, asOf time.Time) (*finance.Report, error) {
	if m.reportFn != nil {
		return m.reportFn(userID, asOf)
	}
	return &finance.Report{AsOf: asOf}, nil
}

func (m *mockInsightService) Evaluate(snapshot finance.Snapshot, asOf time.Time) (*finance.Report, error) {
	if m.evaluateFn != nil {
		return m.evaluateFn(snapshot, asOf)
	}
	return &finance.Report{AsOf: asOf}, nil
}

// --- mock history service ---

type mockHistoryService struct {
	recordSnapshotsFn func(recordedAt time.Time) (int, error)
	getHistoryFn      func(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}

var _ services.NetWorthHistoryServicer = (*mockHistoryService)(nil)

func (m *mockHistoryService) RecordSnapshots(recordedAt time.Time) (int, error) {
	if m.recordSnapshotsFn != nil {
		return m.recordSnapshotsFn(recordedAt)
	}
	return 0, nil
}

func (m *mockHistoryService) GetHistory(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	if m.getHistoryFn != nil {
		return m.getHistoryFn(userID, from, to, page)
	}
	resp := pagination.NewPageResponse([]models.NetWorthSnapshot{}, 1, 20, 0)
	return &resp, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
