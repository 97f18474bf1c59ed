package handler

import (
	"net/http"
	"time"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}

var startTime = time.Now()

// GetHealth handles GET /health.
func GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, HealthResponse{
		Status: "ok",
		Uptime: time.Since(startTime).String(),
	}, http.StatusOK)
}

// GetLiveness handles GET /health/live.
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "alive"}, http.StatusOK)
}
