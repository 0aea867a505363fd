package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ergiva/ergiva-server/internal/auth"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin autentica una cuenta admin pre-sembrada con email y password.
// Todos los rechazos responden el mismo 401 opaco.
//
// POST /v1/auth/admin/login
func (a *API) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email y password son obligatorios")
		return
	}

	token, u, err := a.Auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "")
			return
		}
		logger.From(r.Context()).Error("admin login failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(a.Auth.TokenTTL().Seconds()),
		User:      toUserDTO(u),
	})
}
