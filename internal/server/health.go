package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Health status constants for health check responses.
const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
	healthStatusNoToken      = "no token"
)

// HealthChecker serves liveness and readiness endpoints next to /metrics.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a HealthChecker that starts out ready. sc may be nil,
// in which case only the ready flag is checked.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady sets the readiness state of the server.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse represents the JSON response for health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse adds the uptime and the default account to the checks.
type DetailedHealthResponse struct {
	HealthResponse
	Uptime         string `json:"uptime"`
	Account        string `json:"account,omitempty"`
	TokenAvailable bool   `json:"token_available"`
}

// check evaluates readiness. The server is ready when it was not marked
// otherwise, is not shutting down, and holds a token for the default account.
func (h *HealthChecker) check() HealthResponse {
	checks := map[string]string{
		"ready":    healthStatusOK,
		"shutdown": healthStatusOK,
		"token":    healthStatusOK,
	}
	if !h.ready.Load() {
		checks["ready"] = healthStatusNotReady
	}
	if sc := h.serverContext; sc != nil {
		if sc.IsShutdown() {
			checks["shutdown"] = healthStatusShuttingDown
		}
		if !sc.HasToken(sc.DefaultAccount()) {
			checks["token"] = healthStatusNoToken
		}
	}

	status := healthStatusOK
	for _, v := range checks {
		if v != healthStatusOK {
			status = healthStatusNotReady
		}
	}
	return HealthResponse{Status: status, Checks: checks}
}

func writeHealth(w http.ResponseWriter, ok bool, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if ok {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(body)
}

// LivenessHandler serves /healthz. It only reports that the process is running.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, true, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler serves /readyz.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := h.check()
		writeHealth(w, resp.Status == healthStatusOK, resp)
	})
}

// DetailedHealthHandler serves /healthz/detailed.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := DetailedHealthResponse{
			HealthResponse: h.check(),
			Uptime:         time.Since(h.startTime).Truncate(time.Second).String(),
		}
		if sc := h.serverContext; sc != nil {
			resp.Account = sc.DefaultAccount()
			resp.TokenAvailable = sc.HasToken(resp.Account)
		} else {
			resp.TokenAvailable = true
		}
		writeHealth(w, resp.Status == healthStatusOK, resp)
	})
}

// RegisterHealthEndpoints registers health check endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}
