// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	driver             string
	storeHealthChecker func(ctx context.Context) bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	Driver    string `json:"driver"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(driver string, storeHealthChecker func(ctx context.Context) bool) *HealthController {
	return &HealthController{
		driver:             driver,
		storeHealthChecker: storeHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its state store. The
// API keeps serving from memory while the store is down, so the status stays ok.
func (h *HealthController) Check(c *gin.Context) {
	storeStatus := "disconnected"
	if h.storeHealthChecker != nil && h.storeHealthChecker(c.Request.Context()) {
		storeStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Store:     storeStatus,
		Driver:    h.driver,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
