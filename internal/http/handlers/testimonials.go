package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/http/middlewares"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

// ListTestimonials lista los testimonios aprobados, vista pública.
//
// GET /v1/testimonials
func (a *API) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := a.Store.Testimonials().ListApproved(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("testimonial list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]testimonialDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toTestimonialDTO(&items[i], false))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"testimonials": dtos})
}

type createTestimonialRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// CreateTestimonial crea un testimonio del usuario autenticado. Nace
// pending: no aparece en la vista pública hasta que un admin lo apruebe.
//
// POST /v1/testimonials
func (a *API) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req createTestimonialRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "content es obligatorio")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "rating debe estar entre 1 y 5")
		return
	}

	u := middlewares.GetUser(r.Context())
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = u.Name
	}
	t, err := a.Store.Testimonials().Create(r.Context(), repository.CreateTestimonialInput{
		UserID:  u.ID,
		Author:  author,
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		logger.From(r.Context()).Error("testimonial create failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTestimonialDTO(t, true))
}

// ListAllTestimonials lista todos los testimonios con su estado. Solo admin.
//
// GET /v1/admin/testimonials
func (a *API) ListAllTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := a.Store.Testimonials().List(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("testimonial list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]testimonialDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toTestimonialDTO(&items[i], true))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"testimonials": dtos})
}

// UpdateTestimonialStatus aprueba o rechaza un testimonio. Solo admin.
//
// PUT /v1/admin/testimonials/{id}/status
func (a *API) UpdateTestimonialStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	t, err := a.Store.Testimonials().UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			httpx.WriteError(w, http.StatusNotFound, "testimonial_not_found", "")
		case repository.IsInvalidInput(err):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status desconocido")
		default:
			logger.From(r.Context()).Error("testimonial status update failed", logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTestimonialDTO(t, true))
}
