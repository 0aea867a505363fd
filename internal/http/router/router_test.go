package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authsvc "github.com/ergiva/ergiva-server/internal/auth"
	"github.com/ergiva/ergiva-server/internal/cache"
	"github.com/ergiva/ergiva-server/internal/email"
	"github.com/ergiva/ergiva-server/internal/http/handlers"
	"github.com/ergiva/ergiva-server/internal/http/router"
	"github.com/ergiva/ergiva-server/internal/identity"
	jwtx "github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/rate"
	"github.com/ergiva/ergiva-server/internal/store/memory"
)

func newRouter(t *testing.T, opts func(*router.Options)) http.Handler {
	t.Helper()
	st := memory.New()
	issuer := jwtx.NewIssuer("router-secret", time.Hour)
	users := st.Users()
	api := &handlers.API{
		Store:    st,
		Auth:     authsvc.NewService(users, identity.NewResolver(users), issuer, authsvc.BcryptVerifier{}),
		Cache:    cache.NewMemory(""),
		CacheTTL: time.Minute,
		Mail:     email.NopSender{},
	}
	o := router.Options{API: api, Issuer: issuer}
	if opts != nil {
		opts(&o)
	}
	return router.New(o)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	h := newRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Un request id del cliente se propaga tal cual.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "rid-cliente")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "rid-cliente", rec.Header().Get("X-Request-ID"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newRouter(t, func(o *router.Options) {
		o.CORSAllowedOrigins = []string{"http://localhost:3000"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	// Origin ajeno: sin headers de CORS.
	req = httptest.NewRequest(http.MethodOptions, "/v1/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_LoginRateLimit(t *testing.T) {
	h := newRouter(t, func(o *router.Options) {
		o.LoginLimiter = rate.NewMemoryLimiter(2, time.Minute)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	// Los primeros dos pasan el limiter (fallan por payload, no por 429).
	require.NotEqual(t, http.StatusTooManyRequests, do().Code)
	require.NotEqual(t, http.StatusTooManyRequests, do().Code)

	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// El resto de la API no se limita.
	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	prodRec := httptest.NewRecorder()
	h.ServeHTTP(prodRec, req)
	require.Equal(t, http.StatusOK, prodRec.Code)
}

func TestRouter_GoogleDisabledWhenUnconfigured(t *testing.T) {
	h := newRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/google", nil))
	require.Equal(t, http.StatusNotImplemented, rec.Code)
}
