package health

import (
	"context"
	"net/http"
	"time"

	"fitness-scheduler/common/httputil"
	"fitness-scheduler/common/metrics"

	"github.com/go-chi/chi/v5"
)

// DatabaseDependency names the store in readiness metrics.
const DatabaseDependency = "postgres"

// Pinger is satisfied by db.Gateway.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	metrics *metrics.HealthMetrics
	timeout time.Duration
}

func NewHandler(db Pinger, m *metrics.Metrics) *Handler {
	h := &Handler{db: db, timeout: 2 * time.Second}
	if m != nil {
		h.metrics = m.Health
	}
	return h
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready reports whether a database connection can be acquired and pinged.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	h.metrics.RecordDependencyCheck(r.Context(), DatabaseDependency, time.Since(start), err)

	if err != nil {
		httputil.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
