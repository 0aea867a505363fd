// Package router arma el árbol de rutas HTTP del servidor Ergiva.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/http/handlers"
	"github.com/ergiva/ergiva-server/internal/http/middlewares"
	"github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/rate"
)

// Options son las dependencias del router.
type Options struct {
	API    *handlers.API
	Issuer *jwt.Issuer

	CORSAllowedOrigins []string

	// LoginLimiter limita los endpoints de login. nil = sin límite.
	LoginLimiter rate.Limiter

	// Metrics es el handler de /metrics. nil = no se expone.
	Metrics http.Handler
}

// New construye el handler raíz con todas las rutas y middlewares.
func New(opts Options) http.Handler {
	api := opts.API

	r := chi.NewRouter()
	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithRecover())
	r.Use(middlewares.WithCORS(opts.CORSAllowedOrigins))
	r.Use(httpx.WithMetrics(routePattern))

	r.Get("/healthz", api.Healthz)
	r.Get("/readyz", api.Readyz)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	requireAuth := middlewares.RequireAuth(opts.Issuer, api.Store.Users())
	requireAdmin := middlewares.RequireAdmin()

	r.Route("/v1", func(r chi.Router) {
		// Login: público, con rate limit si está configurado.
		r.Group(func(r chi.Router) {
			if opts.LoginLimiter != nil {
				r.Use(middlewares.WithRateLimit(opts.LoginLimiter))
			}
			r.Get("/auth/google", api.GoogleStart)
			r.Get("/auth/google/callback", api.GoogleCallback)
			r.Post("/auth/admin/login", api.AdminLogin)
		})

		// Vistas públicas.
		r.Get("/products", api.ListProducts)
		r.Get("/products/{id}", api.GetProduct)
		r.Get("/testimonials", api.ListTestimonials)
		r.Post("/partners/apply", api.ApplyPartner)
		r.Post("/contact", api.SubmitContact)

		// Requiere sesión.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/me", api.Me)
			r.Put("/me", api.UpdateMe)

			r.Post("/orders", api.CreateOrder)
			r.Get("/orders", api.ListMyOrders)
			r.Get("/orders/{id}", api.GetOrder)

			r.Post("/sessions", api.CreateSession)
			r.Get("/sessions", api.ListMySessions)
			r.Get("/sessions/{id}", api.GetSession)

			r.Post("/testimonials", api.CreateTestimonial)
		})

		// Solo admin.
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)

			r.Post("/products", api.CreateProduct)
			r.Put("/products/{id}", api.UpdateProduct)
			r.Delete("/products/{id}", api.DeleteProduct)

			r.Get("/orders", api.ListAllOrders)
			r.Put("/orders/{id}/status", api.UpdateOrderStatus)

			r.Get("/sessions", api.ListAllSessions)
			r.Put("/sessions/{id}/status", api.UpdateSessionStatus)

			r.Get("/partners", api.ListPartners)
			r.Put("/partners/{id}/status", api.UpdatePartnerStatus)

			r.Get("/testimonials", api.ListAllTestimonials)
			r.Put("/testimonials/{id}/status", api.UpdateTestimonialStatus)

			r.Get("/contacts", api.ListContacts)
		})
	})

	return r
}

// routePattern etiqueta las métricas con el pattern de chi ("/v1/products/{id}")
// en vez del path crudo, para que los ids no disparen la cardinalidad.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}
