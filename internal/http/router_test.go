package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nba-apex-engine/internal/refresher"
)

func TestRouterRoutes(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	router := NewRouter(handler)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{nethttp.MethodGet, "/health", nethttp.StatusOK},
		{nethttp.MethodGet, "/ready", nethttp.StatusOK},
		{nethttp.MethodGet, "/analysis", nethttp.StatusOK},
		{nethttp.MethodGet, "/analysis/game-1", nethttp.StatusOK},
		{nethttp.MethodGet, "/tickets", nethttp.StatusOK},
		{nethttp.MethodGet, "/bets", nethttp.StatusOK},
		{nethttp.MethodGet, "/analysis/unknown", nethttp.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rec.Code)
		}
	}
}

func TestRouterReadyUsesRefresherStatus(t *testing.T) {
	svc := seededService(t)
	handler := NewHandler(svc, nil, nil, &stubReadiness{status: refresher.Status{
		LastSuccess:         time.Now(),
		ConsecutiveFailures: 3,
	}}, nil, nil)
	router := NewRouter(handler)

	req := httptest.NewRequest(nethttp.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("expected 503 after repeated failures, got %d", rec.Code)
	}
}
