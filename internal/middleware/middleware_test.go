package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "finsight/internal/errors"
	"finsight/internal/finance"
	"finsight/internal/metrics"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "user_id": c.GetString(UserIDKey)})
}

func doRequest(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestPipelineAuthMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		requestKey    string
		wantStatus    int
		wantErrorCode string
	}{
		{name: "valid_api_key", configuredKey: "pipeline-key", requestKey: "pipeline-key", wantStatus: http.StatusOK},
		{name: "invalid_api_key", configuredKey: "pipeline-key", requestKey: "wrong", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "missing_api_key", configuredKey: "pipeline-key", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "prefix_rejected", configuredKey: "pipeline-key", requestKey: "pipeline", wantStatus: http.StatusUnauthorized, wantErrorCode: "INVALID_API_KEY"},
		{name: "not_configured", requestKey: "any", wantStatus: http.StatusServiceUnavailable, wantErrorCode: "PIPELINE_NOT_CONFIGURED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/pipeline", PipelineAuthMiddleware(tt.configuredKey), okHandler)

			headers := map[string]string{}
			if tt.requestKey != "" {
				headers[APIKeyHeader] = tt.requestKey
			}
			rec := doRequest(r, http.MethodPost, "/pipeline", headers)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantErrorCode != "" {
				if code := errorCode(t, rec); code != tt.wantErrorCode {
					t.Errorf("error code = %q, want %q", code, tt.wantErrorCode)
				}
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), okHandler)

	t.Run("valid_token_sets_user", func(t *testing.T) {
		token, err := GenerateAccessToken(testSecret, "user-1")
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		rec := doRequest(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := parseBody(t, rec)["user_id"]; got != "user-1" {
			t.Errorf("expected user_id user-1, got %v", got)
		}
	})

	t.Run("rejects", func(t *testing.T) {
		otherSecret, _ := GenerateAccessToken("other-secret", "user-1")
		noUser, _ := GenerateAccessToken(testSecret, "")
		refresh, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
			UserID:    "user-1",
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte(testSecret))
		expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
			UserID:    "user-1",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}).SignedString([]byte(testSecret))

		cases := map[string]string{
			"missing_header": "",
			"wrong_scheme":   "Basic abc",
			"garbage_token":  "Bearer not.a.token",
			"wrong_secret":   "Bearer " + otherSecret,
			"no_user_id":     "Bearer " + noUser,
			"refresh_token":  "Bearer " + refresh,
			"expired_token":  "Bearer " + expired,
		}
		for name, header := range cases {
			t.Run(name, func(t *testing.T) {
				headers := map[string]string{}
				if header != "" {
					headers["Authorization"] = header
				}
				rec := doRequest(r, http.MethodGet, "/me", headers)

				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", rec.Code)
				}
				if code := errorCode(t, rec); code != "UNAUTHORIZED" {
					t.Errorf("expected UNAUTHORIZED, got %q", code)
				}
			})
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperrors.ErrGoalNotFound) })
	r.GET("/finance", func(c *gin.Context) {
		_ = c.Error(&finance.ValidationError{Entity: "goal", ID: "g1", Field: "target_amount", Reason: "must be positive"})
	})
	r.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("disk full")) })
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{})
		_ = c.Error(errors.New("late"))
	})

	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{"/app", http.StatusNotFound, "GOAL_NOT_FOUND"},
		{"/finance", http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"/plain", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			rec := doRequest(r, http.MethodGet, tt.path, nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if code := errorCode(t, rec); code != tt.wantErr {
				t.Errorf("expected %s, got %s", tt.wantErr, code)
			}
		})
	}

	t.Run("keeps_written_response", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/written", nil)
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected 418, got %d", rec.Code)
		}
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(_ *gin.Context) { panic("boom") })

	rec := doRequest(r, http.MethodGet, "/panic", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", code)
	}
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", okHandler)

	t.Run("generates_request_id", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/ping", nil)
		if rec.Header().Get(requestIDHeader) == "" {
			t.Error("expected X-Request-ID header")
		}
	})

	t.Run("reuses_incoming_request_id", func(t *testing.T) {
		id := "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
		rec := doRequest(r, http.MethodGet, "/ping", map[string]string{requestIDHeader: id})
		if got := rec.Header().Get(requestIDHeader); got != id {
			t.Errorf("expected %s, got %s", id, got)
		}
	})

	t.Run("replaces_malformed_request_id", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/ping", map[string]string{requestIDHeader: "<script>"})
		if got := rec.Header().Get(requestIDHeader); got == "<script>" || got == "" {
			t.Errorf("expected a generated id, got %q", got)
		}
	})
}

func TestMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	r := gin.New()
	r.Use(Metrics(collector))
	r.GET("/goals/:id", okHandler)

	doRequest(r, http.MethodGet, "/goals/abc", nil)
	doRequest(r, http.MethodGet, "/goals/def", nil)
	doRequest(r, http.MethodGet, "/missing", nil)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	if !strings.Contains(text, `http_requests_total{method="GET",path="/goals/:id",status="200"} 2`) {
		t.Errorf("expected route template series with count 2, got:\n%s", text)
	}
	if !strings.Contains(text, `path="unmatched"`) {
		t.Error("expected unmatched series")
	}
}
