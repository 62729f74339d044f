package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// sessionCounter reports how many learning sessions are held in memory.
type sessionCounter interface {
	Len() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	sessions    sessionCounter
	maxSessions int
	version     string
}

// NewHealthHandler creates a HealthHandler. maxSessions of 0 means unbounded.
func NewHealthHandler(sessions sessionCounter, maxSessions int, version string) *HealthHandler {
	return &HealthHandler{sessions: sessions, maxSessions: maxSessions, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Active int    `json:"active"`
	Limit  int    `json:"limit,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 503 while the session registry is full.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.full(h.sessions.Len()) {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. Includes version and active session count.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	active := h.sessions.Len()

	comp := CompStatus{Status: "ok", Active: active, Limit: h.maxSessions}
	overallStatus := "ok"
	if h.full(active) {
		comp.Status = "full"
		overallStatus = "down"
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: map[string]CompStatus{"sessions": comp},
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) full(active int) bool {
	return h.maxSessions > 0 && active >= h.maxSessions
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
