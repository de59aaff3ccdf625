package member

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
	msgCreated    = "New Member Added Successfully"
	msgUpdated    = "Customer Details Successfully Updated!"
	msgDeleted    = "Member Removed Successfully"
	msgNotFound   = "Member ID Not Found"
	msgInvalidID  = "Invalid member ID"
	msgConnection = "Database Connection Failed"
	msgInternal   = "Internal Server Error"
	msgUnreadable = "Unable to read request body"

	resource   = "member"
	viewList   = "list"
	viewSingle = "single"
)

// CreateResponse confirms a create and echoes the stored member.
type CreateResponse struct {
	Message string  `json:"Message"`
	Member  *Member `json:"member"`
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
	router.Get("/members", h.GetAllMembers)
	router.Post("/members", h.CreateMember)
	router.Get("/members/{id}", h.GetMember)
	router.Put("/members/{id}", h.UpdateMember)
	router.Delete("/members/{id}", h.DeleteMember)
}

func (h *Handler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all members")

	members, err := h.service.GetAllMembers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordMembersViewed(r.Context(), viewList)
	httputil.RespondWithJSON(w, http.StatusOK, members)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	h.logger.InfoContext(r.Context(), "fetching member by ID", "member_id", id)
	member, err := h.service.GetMemberByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordMembersViewed(r.Context(), viewSingle)
	httputil.RespondWithJSON(w, http.StatusOK, member)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !h.decode(w, r, &in) {
		return
	}

	h.logger.InfoContext(r.Context(), "creating member", "membership_type", in.MembershipType)
	member, err := h.service.CreateMember(r.Context(), in)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordMemberCreated(r.Context())
	httputil.RespondWithJSON(w, http.StatusCreated, CreateResponse{Message: msgCreated, Member: member})
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	var in Input
	if !h.decode(w, r, &in) {
		return
	}

	h.logger.InfoContext(r.Context(), "updating member", "member_id", id)
	if err := h.service.UpdateMember(r.Context(), id, in); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithMessage(w, http.StatusOK, msgUpdated)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	h.logger.InfoContext(r.Context(), "deleting member", "member_id", id)
	if err := h.service.DeleteMember(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordMemberDeleted(r.Context())
	httputil.RespondWithMessage(w, http.StatusOK, msgDeleted)
}

// decode writes the 400 response itself and reports whether the handler
// may continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, in *Input) bool {
	err := h.decoder.Decode(r.Body, in)
	if err == nil {
		return true
	}

	h.metrics.RecordRequestError(r.Context(), resource, "validation")

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		h.logger.InfoContext(r.Context(), "invalid member body", "fields", verr.Fields)
		httputil.RespondWithJSON(w, http.StatusBadRequest, verr)
		return false
	}

	h.logger.WarnContext(r.Context(), "failed to read member body", "error", err)
	httputil.RespondWithError(w, http.StatusBadRequest, msgUnreadable)
	return false
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, ErrMemberNotFound):
		h.logger.InfoContext(ctx, "member not found")
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
