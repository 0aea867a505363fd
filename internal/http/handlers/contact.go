package handlers

import (
	"net/http"
	"strings"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SubmitContact recibe una consulta del formulario público de contacto.
//
// POST /v1/contact
func (a *API) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Message == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name y message son obligatorios")
		return
	}

	c, err := a.Store.Contacts().Create(r.Context(), repository.CreateContactInput{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Message: req.Message,
	})
	if err != nil {
		logger.From(r.Context()).Error("contact create failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toContactDTO(c))
}

// ListContacts lista todas las consultas recibidas. Solo admin.
//
// GET /v1/admin/contacts
func (a *API) ListContacts(w http.ResponseWriter, r *http.Request) {
	items, err := a.Store.Contacts().List(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("contact list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]contactDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toContactDTO(&items[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"contacts": dtos})
}
