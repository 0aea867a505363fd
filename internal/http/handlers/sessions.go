package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/email"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/http/middlewares"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

var validSlots = map[string]bool{"morning": true, "afternoon": true, "evening": true}

type createSessionRequest struct {
	PatientName   string `json:"patient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Condition     string `json:"condition"`
	PreferredDate string `json:"preferred_date"` // YYYY-MM-DD
	Slot          string `json:"slot"`
}

// CreateSession reserva una sesión de fisioterapia a domicilio. Nace en
// estado requested; un admin la confirma después.
//
// POST /v1/sessions
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.PatientName = strings.TrimSpace(req.PatientName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	if req.PatientName == "" || req.Phone == "" || req.Address == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "patient_name, phone y address son obligatorios")
		return
	}
	if !validSlots[req.Slot] {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "slot debe ser morning, afternoon o evening")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.PreferredDate, time.UTC)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "preferred_date debe ser YYYY-MM-DD")
		return
	}
	if date.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "preferred_date no puede ser pasada")
		return
	}

	u := middlewares.GetUser(r.Context())
	s, err := a.Store.Sessions().Create(r.Context(), repository.CreateSessionInput{
		UserID:        u.ID,
		PatientName:   req.PatientName,
		Phone:         req.Phone,
		Address:       req.Address,
		Condition:     strings.TrimSpace(req.Condition),
		PreferredDate: date,
		Slot:          req.Slot,
	})
	if err != nil {
		logger.From(r.Context()).Error("session create failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}

	subject, html, text := email.SessionConfirmation(s)
	if err := a.Mail.Send(u.Email, subject, html, text); err != nil {
		logger.From(r.Context()).Warn("session confirmation mail failed", logger.SessionID(s.ID), logger.Err(err))
	}

	logger.From(r.Context()).Info("session booked", logger.SessionID(s.ID), logger.UserID(u.ID))
	httpx.WriteJSON(w, http.StatusCreated, toSessionDTO(s))
}

// ListMySessions lista las reservas del usuario autenticado.
//
// GET /v1/sessions
func (a *API) ListMySessions(w http.ResponseWriter, r *http.Request) {
	u := middlewares.GetUser(r.Context())
	sessions, err := a.Store.Sessions().ListByUser(r.Context(), u.ID)
	if err != nil {
		logger.From(r.Context()).Error("session list failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]sessionDTO, 0, len(sessions))
	for i := range sessions {
		dtos = append(dtos, toSessionDTO(&sessions[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"sessions": dtos})
}

// GetSession retorna una reserva propia; ajena responde 404 salvo admin.
//
// GET /v1/sessions/{id}
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := a.Store.Sessions().GetByID(r.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			httpx.WriteError(w, http.StatusNotFound, "session_not_found", "")
			return
		}
		logger.From(r.Context()).Error("session fetch failed", logger.SessionID(id), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	u := middlewares.GetUser(r.Context())
	if s.UserID != u.ID && !u.IsAdmin {
		httpx.WriteError(w, http.StatusNotFound, "session_not_found", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionDTO(s))
}

// ListAllSessions lista todas las reservas. Solo admin.
//
// GET /v1/admin/sessions
func (a *API) ListAllSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.Store.Sessions().List(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("session list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]sessionDTO, 0, len(sessions))
	for i := range sessions {
		dtos = append(dtos, toSessionDTO(&sessions[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"sessions": dtos})
}

// UpdateSessionStatus cambia el estado de una reserva. Solo admin.
//
// PUT /v1/admin/sessions/{id}/status
func (a *API) UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	s, err := a.Store.Sessions().UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			httpx.WriteError(w, http.StatusNotFound, "session_not_found", "")
		case repository.IsInvalidInput(err):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status desconocido")
		default:
			logger.From(r.Context()).Error("session status update failed", logger.SessionID(id), logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		}
		return
	}
	logger.From(r.Context()).Info("session status updated", logger.SessionID(s.ID), logger.String("status", s.Status))
	httpx.WriteJSON(w, http.StatusOK, toSessionDTO(s))
}
