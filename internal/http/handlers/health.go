package handlers

import (
	"net/http"

	httpx "github.com/ergiva/ergiva-server/internal/http"
)

// Healthz es liveness: responde mientras el proceso esté vivo.
//
// GET /healthz
func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz es readiness: verifica que el store responda.
//
// GET /readyz
func (a *API) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ping(r.Context()); err != nil {
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
