package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

const stateTTL = 10 * time.Minute

type statePayload struct {
	Nonce    string `json:"nonce"`
	Redirect string `json:"redirect,omitempty"`
}

func randB64(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// GoogleStart arranca el flujo OAuth: genera state+nonce de un solo uso
// (guardados en cache) y redirige al consent screen de Google.
//
// GET /v1/auth/google?redirect=<origin del frontend, opcional>
func (a *API) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if a.OIDC == nil {
		httpx.WriteError(w, http.StatusNotImplemented, "provider_disabled", "google no está configurado")
		return
	}

	redirect := strings.TrimSpace(r.URL.Query().Get("redirect"))
	if redirect != "" && !a.allowedRedirect(redirect) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_redirect", "redirect no permitido")
		return
	}

	state := randB64(24)
	sp := statePayload{Nonce: randB64(24), Redirect: redirect}
	payload, _ := json.Marshal(sp)
	if err := a.Cache.Set(r.Context(), "oauth:state:"+state, payload, stateTTL); err != nil {
		logger.From(r.Context()).Error("oauth state store failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "state_store_failed", "")
		return
	}

	authURL, err := a.OIDC.AuthURL(r.Context(), state, sp.Nonce)
	if err != nil {
		httpx.WriteError(w, http.StatusBadGateway, "provider_unavailable", "")
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// GoogleCallback completa el flujo: valida state (un solo uso), canjea el
// code, verifica el id_token y resuelve la identidad a un usuario interno.
//
// GET /v1/auth/google/callback?code=...&state=...
func (a *API) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if a.OIDC == nil {
		httpx.WriteError(w, http.StatusNotImplemented, "provider_disabled", "google no está configurado")
		return
	}

	q := r.URL.Query()
	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "faltan code o state")
		return
	}

	raw, err := a.Cache.Get(r.Context(), "oauth:state:"+state)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_state", "state desconocido o expirado")
		return
	}
	// Un solo uso: se borra antes de seguir.
	_ = a.Cache.Delete(r.Context(), "oauth:state:"+state)

	var sp statePayload
	if err := json.Unmarshal(raw, &sp); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_state", "")
		return
	}

	idToken, err := a.OIDC.ExchangeCode(r.Context(), code)
	if err != nil {
		logger.From(r.Context()).Warn("oauth code exchange failed", logger.Err(err))
		httpx.WriteError(w, http.StatusBadGateway, "exchange_failed", "")
		return
	}

	profile, err := a.OIDC.VerifyIDToken(r.Context(), idToken, sp.Nonce)
	if err != nil {
		logger.From(r.Context()).Warn("id_token verification failed", logger.Err(err))
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_id_token", "")
		return
	}

	token, u, err := a.Auth.LoginWithGoogle(r.Context(), *profile)
	if err != nil {
		// Falla de persistencia: intento de login abortado, opaco para el
		// cliente, causa en el log.
		logger.From(r.Context()).Error("identity resolution failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "resolution_failed", "")
		return
	}

	if sp.Redirect != "" {
		target, err := url.Parse(sp.Redirect)
		if err == nil {
			tq := target.Query()
			tq.Set("token", token)
			target.RawQuery = tq.Encode()
			http.Redirect(w, r, target.String(), http.StatusFound)
			return
		}
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(a.Auth.TokenTTL().Seconds()),
		User:      toUserDTO(u),
	})
}

func (a *API) allowedRedirect(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	origin := u.Scheme + "://" + u.Host
	for _, o := range a.FrontendOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
