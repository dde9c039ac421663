// Package handler provides HTTP handlers for the JetSweep API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
	"github.com/TaylorONeal/jetsweep/internal/resilience"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReporter lists the health of guarded dependencies.
type HealthReporter interface {
	AllHealth() []*resilience.Health
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	store     Pinger
	health    HealthReporter
	clock     func() time.Time
}

// NewOpsHandler creates a new OpsHandler. store and health may be nil.
func NewOpsHandler(version, buildTime string, store Pinger, health HealthReporter, clock func() time.Time) *OpsHandler {
	if clock == nil {
		clock = time.Now
	}
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		store:     store,
		health:    health,
		clock:     clock,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	})
}

// ReadinessCheck handles GET /v1/ops/ready - the recent search store must answer a ping.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			response.ServiceUnavailable(w, r, "recent search store is not reachable", 5*time.Second)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock()),
	})
}

// SystemStatus handles GET /v1/ops/status - circuit breaker state per dependency.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(h.clock()),
		Subsystems: []models.SubsystemStatus{},
	}

	if h.health != nil {
		for _, dep := range h.health.AllHealth() {
			sub := subsystemStatus(dep)
			status.Subsystems = append(status.Subsystems, sub)
			status.Status = worse(status.Status, sub.Status)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func subsystemStatus(h *resilience.Health) models.SubsystemStatus {
	sub := models.SubsystemStatus{
		Name:         h.Name,
		Status:       models.HealthStatusOK,
		CircuitState: h.CircuitState.String(),
	}

	switch h.CircuitState {
	case gobreaker.StateHalfOpen:
		sub.Status = models.HealthStatusDegraded
	case gobreaker.StateOpen:
		sub.Status = models.HealthStatusFail
	}

	if h.LastSuccessAt != nil {
		ts := models.Timestamp(*h.LastSuccessAt)
		sub.LastSuccessAt = &ts
	}
	if h.LastFailureAt != nil {
		ts := models.Timestamp(*h.LastFailureAt)
		sub.LastFailureAt = &ts
	}
	if h.LastError != "" {
		msg := h.LastError
		sub.Message = &msg
	}

	return sub
}

func worse(a, b models.HealthStatus) models.HealthStatus {
	rank := map[models.HealthStatus]int{
		models.HealthStatusOK:       0,
		models.HealthStatusDegraded: 1,
		models.HealthStatusFail:     2,
	}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
