package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB on zero, got %d", maxBodyBytes)
	}
}

func TestSetMaxBodyBytes_SmallLimitRejects(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(8)
	if maxBodyBytes != 8 {
		t.Fatalf("expected 8, got %d", maxBodyBytes)
	}
	w := postThing(t, NewMux(&mockService{}), `{"important_field": true}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 over limit, got %d", w.Code)
	}
}

func TestSetActionTimeoutSeconds_NormalizesNegativeToZero(t *testing.T) {
	defer SetActionTimeoutSeconds(0)
	SetActionTimeoutSeconds(-5)
	if actionTimeout != 0 {
		t.Fatalf("expected 0, got %d", actionTimeout)
	}
	SetActionTimeoutSeconds(3)
	if actionTimeout != 3 {
		t.Fatalf("expected 3, got %d", actionTimeout)
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	SetCORSOptions(true, []string{"*"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)

	h := NewMux(&mockService{ready: true})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected X-Content-Type-Options=nosniff, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS header Access-Control-Allow-Origin to be set, got empty")
	}
}

func TestCORSDisabledByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header, got %q", got)
	}
}
