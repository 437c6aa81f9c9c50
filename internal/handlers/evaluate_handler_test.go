package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/finance"
	"finsight/internal/models"
	"finsight/internal/services"
)

func setupEvaluateRouter(handler *EvaluateHandler) *gin.Engine {
	r := gin.New()
	r.POST("/evaluate", injectUserID(testUserID), handler.Evaluate)
	return r
}

const evaluateBody = `{
	"as_of": "2025-03-15T00:00:00Z",
	"accounts": [
		{"id": "checking", "name": "Checking", "type": "checking", "balance": 250000},
		{"name": "Card", "type": "credit_card", "balance": 30000, "credit_limit": 100000, "minimum_payment": 2500}
	],
	"debts": [
		{"id": "car", "creditor": "Bank", "type": "auto_loan", "original_amount": 200000, "current_balance": 120000,
		 "interest_rate_annual_percent": 6, "minimum_payment": 10000}
	],
	"transactions": [
		{"type": "income", "category": "salary", "amount": 500000, "date": "2025-02-01T00:00:00Z"},
		{"type": "expense", "category": "groceries", "amount": 40000, "date": "2025-03-05T00:00:00Z"}
	],
	"budget_items": [
		{"category": "groceries", "budgeted_amount": 60000, "month": "2025-03"}
	],
	"goals": [
		{"id": "trip", "name": "Trip", "target_amount": 100000, "current_amount": 25000,
		 "start_date": "2025-01-01T00:00:00Z", "target_date": "2025-12-01T00:00:00Z", "monthly_contribution": 10000}
	],
	"investments": [
		{"symbol": "VTI", "quantity": 4, "purchase_price": 2500, "current_price": 3000}
	]
}`

func TestEvaluateHandler_Evaluate(t *testing.T) {
	t.Run("converts_records", func(t *testing.T) {
		var got finance.Snapshot
		var gotAsOf time.Time
		svc := &mockInsightService{
			evaluateFn: func(snapshot finance.Snapshot, asOf time.Time) (*finance.Report, error) {
				got, gotAsOf = snapshot, asOf
				return &finance.Report{AsOf: asOf}, nil
			},
		}
		r := setupEvaluateRouter(NewEvaluateHandler(svc))

		rec := doRequest(r, "POST", "/evaluate", evaluateBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAsOf.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected as_of 2025-03-15, got %v", gotAsOf)
		}
		if len(got.Accounts) != 2 || len(got.Debts) != 1 || len(got.Transactions) != 2 {
			t.Fatalf("unexpected record counts: %+v", got)
		}
		if got.Accounts[0].ID != "checking" {
			t.Errorf("expected supplied id to be kept, got %s", got.Accounts[0].ID)
		}
		if got.Accounts[1].ID == "" {
			t.Error("expected generated id for account without one")
		}
		if !got.Accounts[1].IsActive || got.Accounts[1].Currency != "USD" {
			t.Errorf("expected active USD account, got %+v", got.Accounts[1])
		}
		if got.Goals[0].Priority != models.GoalPriorityMedium {
			t.Errorf("expected default priority medium, got %s", got.Goals[0].Priority)
		}
		if got.Accounts[0].UserID != testUserID {
			t.Errorf("expected records owned by %s, got %s", testUserID, got.Accounts[0].UserID)
		}
	})

	t.Run("computes_report", func(t *testing.T) {
		svc := services.NewInsightService(nil, finance.DefaultReportOptions(), nil)
		r := setupEvaluateRouter(NewEvaluateHandler(svc))

		rec := doRequest(r, "POST", "/evaluate", evaluateBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		nw := result["net_worth"].(map[string]interface{})
		if nw["total_assets"].(float64) != 262000 {
			t.Errorf("expected total_assets 262000, got %v", nw["total_assets"])
		}
		if nw["total_liabilities"].(float64) != 150000 {
			t.Errorf("expected total_liabilities 150000, got %v", nw["total_liabilities"])
		}
		debts := result["debts"].(map[string]interface{})
		if debts["monthly_income"].(float64) != 500000 {
			t.Errorf("expected monthly_income 500000, got %v", debts["monthly_income"])
		}
	})

	t.Run("returns_400_unknown_account_type", func(t *testing.T) {
		r := setupEvaluateRouter(NewEvaluateHandler(&mockInsightService{}))

		rec := doRequest(r, "POST", "/evaluate", `{"accounts":[{"name":"x","type":"piggy_bank","balance":1}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_bad_currency", func(t *testing.T) {
		r := setupEvaluateRouter(NewEvaluateHandler(&mockInsightService{}))

		rec := doRequest(r, "POST", "/evaluate", `{"accounts":[{"name":"x","type":"checking","currency":"XYZ"}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns_400_bad_budget_month", func(t *testing.T) {
		r := setupEvaluateRouter(NewEvaluateHandler(&mockInsightService{}))

		rec := doRequest(r, "POST", "/evaluate", `{"budget_items":[{"category":"groceries","budgeted_amount":1,"month":"03-2025"}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns_422_inconsistent_records", func(t *testing.T) {
		svc := services.NewInsightService(nil, finance.DefaultReportOptions(), nil)
		r := setupEvaluateRouter(NewEvaluateHandler(svc))

		rec := doRequest(r, "POST", "/evaluate", `{"debts":[{"creditor":"Bank","type":"other","original_amount":100,"current_balance":500}]}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_FAILED")
	})
}
