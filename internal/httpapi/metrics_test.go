package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func scrapeMetrics(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

func preview(b []byte) string {
	if len(b) > 400 {
		b = b[:400]
	}
	return string(b)
}

func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := scrapeMetrics(t)
	if !bytes.Contains(body, []byte("thingsd_http_requests_total")) {
		t.Fatalf("expected thingsd_http_requests_total in metrics; got: %q", preview(body))
	}
}

// The middleware runs inside the router, so labels use the route pattern.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Post("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/things/42", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	body := scrapeMetrics(t)
	if !bytes.Contains(body, []byte(`path="/things/{id}"`)) || bytes.Contains(body, []byte(`path="/things/42"`)) {
		t.Fatalf("expected route pattern label; got: %q", preview(body))
	}
}

func TestDecodeFailuresCountedByKind(t *testing.T) {
	h := NewMux(&mockService{})
	postThing(t, h, `{}`)
	postThing(t, h, "\xff")
	body := scrapeMetrics(t)
	for _, want := range []string{
		`thingsd_things_decode_failures_total{kind="parse"}`,
		`thingsd_things_decode_failures_total{kind="io"}`,
	} {
		if !bytes.Contains(body, []byte(want)) {
			t.Fatalf("missing %s in metrics", want)
		}
	}
}

func TestAcceptedThingsCounted(t *testing.T) {
	postThing(t, NewMux(&mockService{}), `{"important_field": true}`)
	body := scrapeMetrics(t)
	if !bytes.Contains(body, []byte(`thingsd_things_accepted_total{important="true"}`)) {
		t.Fatalf("missing accepted counter")
	}
}
