package http

import (
	"bytes"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nba-apex-engine/internal/metrics"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusTeapot)
	})
	wrapped := LoggingMiddleware(logger, metrics.NewRecorder(), next)

	req := httptest.NewRequest(nethttp.MethodGet, "/analysis", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusTeapot {
		t.Fatalf("expected status passthrough, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id header")
	}
	if !strings.Contains(buf.String(), "request complete") {
		t.Fatalf("expected completion log, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "status_code=418") {
		t.Fatalf("expected status in log, got %s", buf.String())
	}
}

func TestLoggingMiddlewarePreservesValidRequestID(t *testing.T) {
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {})
	wrapped := LoggingMiddleware(nil, nil, next)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-id-42")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-id-42" {
		t.Fatalf("expected client request id preserved, got %s", got)
	}
}

func TestLoggingMiddlewareReplacesInvalidRequestID(t *testing.T) {
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {})
	wrapped := LoggingMiddleware(nil, nil, next)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	got := rec.Header().Get("X-Request-ID")
	if got == "" || got == "bad id with spaces" {
		t.Fatalf("expected sanitized request id, got %q", got)
	}
}

func TestLoggingMiddlewareRecordsMetrics(t *testing.T) {
	recorder := metrics.NewRecorder()
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {})
	wrapped := LoggingMiddleware(nil, recorder, next)

	req := httptest.NewRequest(nethttp.MethodGet, "/tickets", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if got := recorder.HTTPRequestCount(); got != 1 {
		t.Fatalf("expected 1 recorded request, got %d", got)
	}
}
