package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler().Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := Check{Name: "postgres", Ping: func(ctx context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(ctx context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name     string
		checks   []Check
		expected int
		report   map[string]string
	}{
		{"no dependencies", nil, http.StatusOK, map[string]string{"status": "ready"}},
		{"all healthy", []Check{ok}, http.StatusOK, map[string]string{"status": "ready", "postgres": "ok"}},
		{"one down", []Check{ok, down}, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "postgres": "ok", "redis": "unhealthy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.checks...).Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}

			var report map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if len(report) != len(tt.report) {
				t.Fatalf("expected %v, got %v", tt.report, report)
			}
			for k, v := range tt.report {
				if report[k] != v {
					t.Fatalf("expected %s=%s, got %v", k, v, report)
				}
			}
		})
	}
}
