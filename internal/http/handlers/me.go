package handlers

import (
	"net/http"
	"strings"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/http/middlewares"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

// Me retorna el perfil del usuario autenticado, tal como quedó tras la
// re-lectura por id del middleware (nunca el snapshot del token).
//
// GET /v1/me
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	u := middlewares.GetUser(r.Context())
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateMe actualiza los campos editables del perfil (name, phone, address).
// Email, google_id e is_admin no se tocan por esta vía.
//
// PUT /v1/me
func (a *API) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name no puede quedar vacío")
			return
		}
		req.Name = &trimmed
	}
	if req.Name == nil && req.Phone == nil && req.Address == nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "nada que actualizar")
		return
	}

	u := middlewares.GetUser(r.Context())
	updated, err := a.Store.Users().UpdateProfile(r.Context(), u.ID, repository.UpdateProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if repository.IsNotFound(err) {
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "")
			return
		}
		logger.From(r.Context()).Error("profile update failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(updated))
}
