package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finsight/internal/config"
	"finsight/internal/finance"
	"finsight/internal/metrics"
	"finsight/internal/middleware"
	"finsight/internal/models"
	"finsight/internal/services"
	"finsight/internal/testutil"
	"finsight/internal/validator"
)

const (
	testSecret = "router-test-secret"
	testAPIKey = "router-test-key"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	collector *metrics.Collector
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		JWTSecret:      testSecret,
		PipelineAPIKey: testAPIKey,
		MetricsEnabled: true,
	}
	collector := metrics.NewCollector()
	snapshots := services.NewSnapshotService(db)
	router := NewRouter(Deps{
		Config:   cfg,
		Insights: services.NewInsightService(snapshots, finance.DefaultReportOptions(), collector),
		History:  services.NewNetWorthHistoryService(db, snapshots, collector),
		Metrics:  collector,
	})
	return &testServer{router: router, db: db, collector: collector}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, userID string) map[string]string {
	t.Helper()
	token, err := middleware.GenerateAccessToken(testSecret, userID)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s := setupServer(t)
		rec := s.do(t, "GET", "/api/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("store_unreachable", func(t *testing.T) {
		router := NewRouter(Deps{
			Config: &config.Config{},
			Ping:   func() error { return errors.New("connection refused") },
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", http.NoBody))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestProtectedRoutes(t *testing.T) {
	s := setupServer(t)

	paths := []string{
		"/api/v1/insights/net-worth",
		"/api/v1/insights/report",
		"/api/v1/insights/net-worth/history?from_date=2025-01-01&to_date=2025-02-01",
	}
	for _, path := range paths {
		rec := s.do(t, "GET", path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestInsightFlow(t *testing.T) {
	s := setupServer(t)
	user := testutil.NewUserID()
	other := testutil.NewUserID()

	testutil.CreateTestAccount(t, s.db, user, models.AccountTypeChecking, 250000)
	testutil.CreateTestCreditCard(t, s.db, user, 30000, 100000, 2500)
	testutil.CreateTestDebt(t, s.db, user, 120000, 6, 10000)
	testutil.CreateTestTransaction(t, s.db, user, models.TransactionTypeIncome, models.CategorySalary, 500000,
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestTransaction(t, s.db, user, models.TransactionTypeExpense, models.CategoryGroceries, 40000,
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestBudgetItem(t, s.db, user, models.CategoryGroceries, 60000, "2025-03")
	goal := testutil.CreateTestGoal(t, s.db, user, 100000, 25000,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), 10000)
	testutil.CreateTestAccount(t, s.db, other, models.AccountTypeSavings, 999999)

	auth := bearer(t, user)

	t.Run("net_worth", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/v1/insights/net-worth?as_of=2025-03-15", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decode(t, rec)
		if body["total_assets"].(float64) != 250000 {
			t.Errorf("expected total_assets 250000, got %v", body["total_assets"])
		}
		if body["net_worth"].(float64) != 100000 {
			t.Errorf("expected net_worth 100000, got %v", body["net_worth"])
		}
	})

	t.Run("budget", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/v1/insights/budget?month=2025-03", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("goal_progress", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/v1/goals/"+goal.ID+"/progress?as_of=2025-03-15", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if decode(t, rec)["percent_complete"].(float64) != 25 {
			t.Errorf("expected 25 percent complete")
		}
	})

	t.Run("goal_of_other_user_not_found", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/v1/goals/"+goal.ID+"/progress", "", bearer(t, other))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("debts_invalid_strategy", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/v1/insights/debts?strategy=lottery", "", auth)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("report", func(t *testing.T) {
		rec := s.do(t, "GET", "/api/v1/insights/report?as_of=2025-03-15", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		debts := decode(t, rec)["debts"].(map[string]interface{})
		if debts["total_minimum_payments"].(float64) != 12500 {
			t.Errorf("expected minimums 12500, got %v", debts["total_minimum_payments"])
		}
	})

	t.Run("history_via_pipeline", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/v1/pipeline/net-worth/snapshots",
			`{"recorded_at":"2025-03-15T00:00:00Z"}`, map[string]string{"X-API-Key": testAPIKey})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if decode(t, rec)["snapshots_recorded"].(float64) != 2 {
			t.Errorf("expected 2 snapshots recorded, got %s", rec.Body.String())
		}

		rec = s.do(t, "GET", "/api/v1/insights/net-worth/history?from_date=2025-03-01&to_date=2025-03-31", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if decode(t, rec)["total_items"].(float64) != 1 {
			t.Errorf("expected 1 history item, got %s", rec.Body.String())
		}
	})

	t.Run("pipeline_requires_key", func(t *testing.T) {
		rec := s.do(t, "POST", "/api/v1/pipeline/net-worth/snapshots", `{"recorded_at":"2025-03-15T00:00:00Z"}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("metrics_exposed", func(t *testing.T) {
		rec := s.do(t, "GET", "/metrics", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		text := rec.Body.String()
		for _, want := range []string{
			`http_requests_total{method="GET",path="/api/v1/insights/net-worth",status="200"}`,
			`insight_computations_total{section="report"}`,
			`networth_snapshots_recorded_total 2`,
		} {
			if !strings.Contains(text, want) {
				t.Errorf("expected metrics to contain %q", want)
			}
		}
	})
}
