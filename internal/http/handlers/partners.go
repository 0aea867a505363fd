package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

type partnerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Experience string `json:"experience"`
	Message    string `json:"message"`
}

// ApplyPartner recibe una solicitud pública para unirse a la red de
// fisioterapeutas. Queda pending hasta revisión admin.
//
// POST /v1/partners/apply
func (a *API) ApplyPartner(w http.ResponseWriter, r *http.Request) {
	var req partnerRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name y un email válido son obligatorios")
		return
	}

	p, err := a.Store.Partners().Create(r.Context(), repository.CreatePartnerInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      strings.TrimSpace(req.Phone),
		City:       strings.TrimSpace(req.City),
		Experience: strings.TrimSpace(req.Experience),
		Message:    strings.TrimSpace(req.Message),
	})
	if err != nil {
		logger.From(r.Context()).Error("partner application failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPartnerDTO(p))
}

// ListPartners lista todas las solicitudes. Solo admin.
//
// GET /v1/admin/partners
func (a *API) ListPartners(w http.ResponseWriter, r *http.Request) {
	apps, err := a.Store.Partners().List(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("partner list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]partnerDTO, 0, len(apps))
	for i := range apps {
		dtos = append(dtos, toPartnerDTO(&apps[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"partners": dtos})
}

// UpdatePartnerStatus aprueba o rechaza una solicitud. Solo admin.
//
// PUT /v1/admin/partners/{id}/status
func (a *API) UpdatePartnerStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	p, err := a.Store.Partners().UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			httpx.WriteError(w, http.StatusNotFound, "partner_not_found", "")
		case repository.IsInvalidInput(err):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status desconocido")
		default:
			logger.From(r.Context()).Error("partner status update failed", logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPartnerDTO(p))
}
