package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/models"
	"finsight/internal/pagination"
)

func setupHistoryRouter(handler *HistoryHandler) *gin.Engine {
	r := gin.New()
	// Pipeline route (no user auth)
	r.POST("/pipeline/net-worth/snapshots", handler.RecordSnapshots)
	// User route (with auth)
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/insights/net-worth/history", handler.GetHistory)
	return r
}

func TestHistoryHandler_RecordSnapshots(t *testing.T) {
	t.Run("returns_200_on_success", func(t *testing.T) {
		var got time.Time
		svc := &mockHistoryService{
			recordSnapshotsFn: func(recordedAt time.Time) (int, error) {
				got = recordedAt
				return 3, nil
			},
		}
		r := setupHistoryRouter(NewHistoryHandler(svc))

		rec := doRequest(r, "POST", "/pipeline/net-worth/snapshots",
			`{"recorded_at":"2026-02-09T12:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["snapshots_recorded"].(float64) != 3 {
			t.Errorf("expected snapshots_recorded=3, got %v", result["snapshots_recorded"])
		}
		if !got.Equal(time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("expected recorded_at 2026-02-09T12:00:00Z, got %v", got)
		}
	})

	t.Run("returns_400_missing_recorded_at", func(t *testing.T) {
		r := setupHistoryRouter(NewHistoryHandler(&mockHistoryService{}))

		rec := doRequest(r, "POST", "/pipeline/net-worth/snapshots", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_500_on_service_error", func(t *testing.T) {
		svc := &mockHistoryService{
			recordSnapshotsFn: func(_ time.Time) (int, error) {
				return 0, errUnexpected
			},
		}
		r := setupHistoryRouter(NewHistoryHandler(svc))

		rec := doRequest(r, "POST", "/pipeline/net-worth/snapshots",
			`{"recorded_at":"2026-02-09T12:00:00Z"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestHistoryHandler_GetHistory(t *testing.T) {
	t.Run("returns_200_with_data", func(t *testing.T) {
		var gotPage pagination.PageRequest
		svc := &mockHistoryService{
			getHistoryFn: func(userID string, _, _ time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
				gotPage = page
				resp := pagination.NewPageResponse([]models.NetWorthSnapshot{
					{UserID: userID, NetWorth: 100000},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupHistoryRouter(NewHistoryHandler(svc))

		rec := doRequest(r, "GET", "/insights/net-worth/history?from_date=2026-01-01&to_date=2026-02-01&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 snapshot, got %d", len(data))
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
	})

	t.Run("returns_400_missing_dates", func(t *testing.T) {
		r := setupHistoryRouter(NewHistoryHandler(&mockHistoryService{}))

		for _, path := range []string{
			"/insights/net-worth/history?to_date=2026-02-01",
			"/insights/net-worth/history?from_date=2026-01-01",
		} {
			rec := doRequest(r, "GET", path, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", path, rec.Code)
			}
		}
	})

	t.Run("returns_400_reversed_range", func(t *testing.T) {
		r := setupHistoryRouter(NewHistoryHandler(&mockHistoryService{}))

		rec := doRequest(r, "GET", "/insights/net-worth/history?from_date=2026-03-01&to_date=2026-02-01", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_page_size_too_large", func(t *testing.T) {
		r := setupHistoryRouter(NewHistoryHandler(&mockHistoryService{}))

		rec := doRequest(r, "GET", "/insights/net-worth/history?from_date=2026-01-01&to_date=2026-02-01&page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
