package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/logger"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.RateLimit.Enabled = false
	cfg.Cache.Enabled = true
	if mutate != nil {
		mutate(cfg)
	}

	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}

	s, err := New(cfg, log)
	if err != nil {
		t.Fatalf("server init failed: %v", err)
	}
	go s.hub.Run()
	t.Cleanup(s.hub.Close)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestHandleValidateURL(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/validate-url", map[string]string{
		"url": "https://instagram.com/alice",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	payload := decodeResponse(t, rec)
	if payload["is_valid"] != true {
		t.Errorf("is_valid = %v, want true", payload["is_valid"])
	}
	if payload["platform"] != "instagram" {
		t.Errorf("platform = %v, want instagram", payload["platform"])
	}
}

func TestHandleValidateURL_InvalidIsStillOK(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/validate-url", map[string]string{
		"url": "https://example.com/profile",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	payload := decodeResponse(t, rec)
	if payload["is_valid"] != false {
		t.Errorf("is_valid = %v, want false", payload["is_valid"])
	}
	if payload["error"] == nil {
		t.Error("expected error string in result")
	}
}

func TestHandleValidateURL_CachedResultStable(t *testing.T) {
	s := newTestServer(t, nil)

	first := doJSON(t, s, http.MethodPost, "/v1/validate-url", map[string]string{
		"url": "https://twitter.com/bob",
	})
	second := doJSON(t, s, http.MethodPost, "/v1/validate-url", map[string]string{
		"url": "https://twitter.com/bob",
	})
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached response differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestHandleSanitize(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/sanitize", map[string]any{
		"name":         "John O'Neil",
		"email":        "john.oneil@example.com",
		"social_links": []string{"https://linkedin.com/in/john"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	payload := decodeResponse(t, rec)
	trackingID, _ := payload["tracking_id"].(string)
	if !strings.HasPrefix(trackingID, "track_") {
		t.Errorf("tracking_id = %q, want track_ prefix", trackingID)
	}
	if payload["email"] != "john.oneil@example.com" {
		t.Errorf("email = %v", payload["email"])
	}
}

func TestHandleSanitize_RejectionIs400(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/sanitize", map[string]any{
		"name":  "Alice",
		"email": "admin@example.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	payload := decodeResponse(t, rec)
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected structured error, got %v", payload["error"])
	}
	if errObj["field"] != "email" {
		t.Errorf("rejected field = %v, want email", errObj["field"])
	}
}

func TestHandleSanitize_MasksSensitiveData(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/sanitize", map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
		"bio":   "Call me at 555-123-4567",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "555-123-4567") {
		t.Error("phone number escaped the masking boundary")
	}
	if !strings.Contains(rec.Body.String(), "[MASKED_PHONE]") {
		t.Error("expected masked phone placeholder")
	}
}

func TestHandleAnalyze_FullPipeline(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/analyze", map[string]any{
		"url":   "https://instagram.com/alice",
		"name":  "Alice",
		"email": "alice@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	payload := decodeResponse(t, rec)
	if payload["platform"] != "instagram" {
		t.Errorf("platform = %v, want instagram", payload["platform"])
	}
	if payload["provider"] != "stub" {
		t.Errorf("provider = %v, want stub", payload["provider"])
	}

	report, ok := payload["privacy_report"].(map[string]any)
	if !ok {
		t.Fatal("missing privacy_report")
	}
	// The stub reports fitness for instagram, which fans out to health and
	// behavioral categories plus both structural signals.
	if report["total_inferences"].(float64) < 3 {
		t.Errorf("total_inferences = %v, want at least 3", report["total_inferences"])
	}
	if report["overall_risk_level"] == "" {
		t.Error("missing overall_risk_level")
	}
}

func TestHandleAnalyze_InvalidURLIs422(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/analyze", map[string]any{
		"url":   "https://example.com/nobody",
		"name":  "Alice",
		"email": "alice@example.com",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDataDeletion(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/v1/sanitize", map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	trackingID := decodeResponse(t, rec)["tracking_id"].(string)

	del := doJSON(t, s, http.MethodDelete, "/v1/data/"+trackingID, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", del.Code, del.Body.String())
	}
	if decodeResponse(t, del)["deleted"] != true {
		t.Error("expected deleted=true")
	}

	again := doJSON(t, s, http.MethodDelete, "/v1/data/"+trackingID, nil)
	if again.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", again.Code)
	}
}

func TestHandleSanitizeReport(t *testing.T) {
	s := newTestServer(t, nil)

	doJSON(t, s, http.MethodPost, "/v1/sanitize", map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
	})

	rec := doJSON(t, s, http.MethodGet, "/v1/sanitize/report", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	payload := decodeResponse(t, rec)
	registry, ok := payload["registry"].(map[string]any)
	if !ok {
		t.Fatal("missing registry stats")
	}
	if registry["active_entries"].(float64) != 1 {
		t.Errorf("active_entries = %v, want 1", registry["active_entries"])
	}
}

func TestHealthAndInfo(t *testing.T) {
	s := newTestServer(t, nil)

	health := doJSON(t, s, http.MethodGet, "/health", nil)
	if health.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", health.Code)
	}

	info := doJSON(t, s, http.MethodGet, "/info", nil)
	if info.Code != http.StatusOK {
		t.Fatalf("info status = %d, want 200", info.Code)
	}
	if decodeResponse(t, info)["name"] != "socialscope" {
		t.Error("unexpected service name")
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
		cfg.Auth.JWTSecret = "test-secret"
	})

	rec := doJSON(t, s, http.MethodPost, "/v1/validate-url", map[string]string{
		"url": "https://instagram.com/alice",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	token, err := s.auth.GenerateToken("user-1", time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/validate-url",
		strings.NewReader(`{"url":"https://instagram.com/alice"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	authed := httptest.NewRecorder()
	s.router.ServeHTTP(authed, req)
	if authed.Code != http.StatusOK {
		t.Errorf("status with token = %d, want 200: %s", authed.Code, authed.Body.String())
	}

	bad := httptest.NewRequest(http.MethodPost, "/v1/validate-url",
		strings.NewReader(`{"url":"https://instagram.com/alice"}`))
	bad.Header.Set("Authorization", "Bearer not-a-token")
	rejected := httptest.NewRecorder()
	s.router.ServeHTTP(rejected, bad)
	if rejected.Code != http.StatusUnauthorized {
		t.Errorf("status with bad token = %d, want 401", rejected.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.Burst = 2
	})

	var last int
	for i := 0; i < 5; i++ {
		rec := doJSON(t, s, http.MethodPost, "/v1/validate-url", map[string]string{
			"url": "https://instagram.com/alice",
		})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want 429", last)
	}
}

func TestMalformedBodyIs400(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate-url", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
