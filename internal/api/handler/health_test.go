package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := jsonContext(http.MethodGet, "/health", "", nil)
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := DependencyCheck{Name: "mongodb", Check: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name       string
		checks     []DependencyCheck
		wantCode   int
		wantStatus string
	}{
		{"all healthy", []DependencyCheck{ok}, http.StatusOK, "ok"},
		{"one down", []DependencyCheck{ok, down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonContext(http.MethodGet, "/health/ready", "", nil)
			if err := NewReadinessHandler(tt.checks...).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, body.Status)
			}
			if len(body.Dependencies) != len(tt.checks) {
				t.Fatalf("expected %d dependencies, got %v", len(tt.checks), body.Dependencies)
			}
		})
	}
}
