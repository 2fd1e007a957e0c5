package listings

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobboard/jobboard/internal/platform/httpx"
	"github.com/jobboard/jobboard/internal/shared"
)

// Handler wires job listing endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers job routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type jobRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Company     string `json:"company" validate:"required,max=255"`
	Location    string `json:"location" validate:"max=255"`
	JobType     string `json:"job_type" validate:"max=50"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
}

type listResponse struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	categoryID, _ := strconv.ParseInt(query.Get("category"), 10, 64)

	filters := ListFilters{
		CategoryID: categoryID,
		JobType:    query.Get("job_type"),
		Location:   query.Get("location"),
		Search:     query.Get("search"),
		SortBy:     query.Get("sort"),
		SortDir:    query.Get("dir"),
		Page:       page,
		Limit:      limit,
	}

	jobs, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list jobs failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Jobs: jobs, Total: total})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseJobID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	req, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Create(r.Context(), actor, req.input())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, job)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	id, err := ParseJobID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Update(r.Context(), actor, id, req.input())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	id, err := ParseJobID(r)
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

func (req jobRequest) input() Input {
	return Input{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		JobType:     req.JobType,
		CategoryID:  req.CategoryID,
	}
}

func (h *Handler) decode(r *http.Request) (jobRequest, error) {
	var req jobRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, fmt.Errorf("%w: invalid JSON body", shared.ErrValidation)
	}
	if err := h.validator.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error())
	}
	return req, nil
}

// ParseJobID extracts the {id} route parameter. Shared with the apply
// endpoint mounted under the same route tree.
func ParseJobID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid job id", shared.ErrValidation)
	}
	return id, nil
}
