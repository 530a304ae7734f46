package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthController_Check(t *testing.T) {
	tests := []struct {
		name          string
		checker       func(ctx context.Context) bool
		expectedStore string
	}{
		{name: "store reachable", checker: func(ctx context.Context) bool { return true }, expectedStore: "connected"},
		{name: "store down", checker: func(ctx context.Context) bool { return false }, expectedStore: "disconnected"},
		{name: "no checker", checker: nil, expectedStore: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.GET("/health", NewHealthController("sqlite", tt.checker).Check)

			w := perform(r, http.MethodGet, "/health", "")

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			resp := decode[HealthResponse](t, w)
			if resp.Status != "ok" {
				t.Errorf("expected status ok, got %s", resp.Status)
			}
			if resp.Store != tt.expectedStore {
				t.Errorf("expected store %s, got %s", tt.expectedStore, resp.Store)
			}
			if resp.Driver != "sqlite" {
				t.Errorf("expected driver sqlite, got %s", resp.Driver)
			}
		})
	}
}
