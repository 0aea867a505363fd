package middlewares

import (
	"net/http"
	"strings"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	jwtx "github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

// RequireAuth valida Authorization: Bearer <JWT> y re-lee el usuario por id
// desde el store antes de dejar pasar el request.
//
// El email/is_admin embebidos en el token nunca se usan para autorizar:
// el registro fresco es el autoritativo, así un flag viejo en un token
// vigente se autocorrige acá. Usuario inexistente = no autenticado (401),
// no error de servidor.
func RequireAuth(issuer *jwtx.Issuer, users repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httpx.WriteError(w, http.StatusUnauthorized, "invalid_or_expired", "falta bearer token")
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			claims, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httpx.WriteError(w, http.StatusUnauthorized, "invalid_or_expired", "token inválido o expirado")
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID())
			if err != nil {
				if repository.IsNotFound(err) {
					httpx.WriteError(w, http.StatusUnauthorized, "user_not_found", "la cuenta ya no existe")
					return
				}
				logger.From(r.Context()).Error("auth user refetch failed", logger.Err(err))
				httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireAdmin exige que el usuario del contexto (releído por RequireAuth)
// tenga el flag admin. Debe usarse después de RequireAuth.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := GetUser(r.Context())
			if u == nil {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid_or_expired", "")
				return
			}
			if !u.IsAdmin {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "se requiere admin")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
