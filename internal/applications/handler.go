package applications

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobboard/jobboard/internal/listings"
	"github.com/jobboard/jobboard/internal/platform/httpx"
	"github.com/jobboard/jobboard/internal/shared"
)

// Handler wires application endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers application routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

// MountJobRoutes registers the apply endpoint under the jobs route tree.
func (h *Handler) MountJobRoutes(r chi.Router) {
	r.Post("/{id}/apply", h.apply)
}

type submitRequest struct {
	Resume      string `json:"resume" validate:"required"`
	CoverLetter string `json:"cover_letter"`
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	jobID, err := listings.ParseJobID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	app, err := h.service.Submit(r.Context(), actor, jobID, SubmitInput{Resume: req.Resume, CoverLetter: req.CoverLetter})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, app)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		if !shared.IsUnauthorized(err) {
			h.logger.Error("list applications failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Application{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	app, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, app)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	app, err := h.service.Update(r.Context(), actor, id, SubmitInput{Resume: req.Resume, CoverLetter: req.CoverLetter})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, app)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) decode(r *http.Request) (submitRequest, error) {
	var req submitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, fmt.Errorf("%w: invalid JSON body", shared.ErrValidation)
	}
	if err := h.validator.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error())
	}
	return req, nil
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid application id", shared.ErrValidation)
	}
	return id, nil
}
