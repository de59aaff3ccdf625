package session

import (
	"errors"
	"log/slog"
	"net/http"

	"fitness-scheduler/common/httputil"
	"fitness-scheduler/internal/db"
	"fitness-scheduler/internal/metrics"
	"fitness-scheduler/internal/schema"

	"github.com/go-chi/chi/v5"
)

const (
	msgScheduled  = "New Session Scheduled Successfully"
	msgUpdated    = "Customer Details Successfully Updated!"
	msgDeleted    = "Session Removed Successfully"
	msgNotFound   = "Session ID Not Found"
	msgInvalidID  = "Invalid session ID"
	msgConnection = "Database Connection Failed"
	msgInternal   = "Internal Server Error"
	msgUnreadable = "Unable to read request body"

	resource   = "session"
	viewList   = "list"
	viewSingle = "single"
)

type CreateResponse struct {
	Message string   `json:"Message"`
	Session *Session `json:"session"`
}

type Handler struct {
	service Service
	decoder *schema.Decoder
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		decoder: schema.NewDecoder(),
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/sessions", h.GetAllSessions)
	router.Post("/sessions", h.ScheduleSession)
	router.Get("/sessions/{id}", h.GetSession)
	router.Put("/sessions/{id}", h.UpdateSession)
	router.Delete("/sessions/{id}", h.DeleteSession)
}

func (h *Handler) GetAllSessions(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all sessions")

	sessions, err := h.service.GetAllSessions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordSessionsViewed(r.Context(), viewList)
	httputil.RespondWithJSON(w, http.StatusOK, sessions)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	h.logger.InfoContext(r.Context(), "fetching session by ID", "session_id", id)
	session, err := h.service.GetSessionByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordSessionsViewed(r.Context(), viewSingle)
	httputil.RespondWithJSON(w, http.StatusOK, session)
}

func (h *Handler) ScheduleSession(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !h.decode(w, r, &in) {
		return
	}

	h.logger.InfoContext(r.Context(), "scheduling session", "member_id", in.MemberID, "workout_type", in.WorkoutType)
	session, err := h.service.ScheduleSession(r.Context(), in)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordSessionScheduled(r.Context())
	httputil.RespondWithJSON(w, http.StatusCreated, CreateResponse{Message: msgScheduled, Session: session})
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	var in Input
	if !h.decode(w, r, &in) {
		return
	}

	h.logger.InfoContext(r.Context(), "updating session", "session_id", id)
	if err := h.service.UpdateSession(r.Context(), id, in); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithMessage(w, http.StatusOK, msgUpdated)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	h.logger.InfoContext(r.Context(), "deleting session", "session_id", id)
	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordSessionDeleted(r.Context())
	httputil.RespondWithMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, in *Input) bool {
	err := h.decoder.Decode(r.Body, in)
	if err == nil {
		return true
	}

	h.metrics.RecordRequestError(r.Context(), resource, "validation")

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		h.logger.InfoContext(r.Context(), "invalid session body", "fields", verr.Fields)
		httputil.RespondWithJSON(w, http.StatusBadRequest, verr)
		return false
	}

	h.logger.WarnContext(r.Context(), "failed to read session body", "error", err)
	httputil.RespondWithError(w, http.StatusBadRequest, msgUnreadable)
	return false
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.logger.InfoContext(ctx, "session not found")
		h.metrics.RecordRequestError(ctx, resource, "not_found")
		httputil.RespondWithError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, ErrInvalidInput):
		h.logger.InfoContext(ctx, "invalid input")
		h.metrics.RecordRequestError(ctx, resource, "validation")
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, db.ErrConnectionFailed):
		h.logger.ErrorContext(ctx, "database connection failed", "error", err)
		h.metrics.RecordRequestError(ctx, resource, "internal")
		httputil.RespondWithError(w, http.StatusInternalServerError, msgConnection)
	default:
		h.logger.ErrorContext(ctx, "internal error", "error", err)
		h.metrics.RecordRequestError(ctx, resource, "internal")
		httputil.RespondWithError(w, http.StatusInternalServerError, msgInternal)
	}
}
