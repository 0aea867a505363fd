// Package handlers implementa los endpoints REST de Ergiva.
package handlers

import (
	"time"

	"github.com/ergiva/ergiva-server/internal/auth"
	"github.com/ergiva/ergiva-server/internal/cache"
	"github.com/ergiva/ergiva-server/internal/email"
	"github.com/ergiva/ergiva-server/internal/oauth/google"
	"github.com/ergiva/ergiva-server/internal/store"
)

// API agrupa las dependencias de los handlers. El router llama a sus
// métodos; los middlewares de auth ya dejaron el usuario en el contexto
// donde corresponde.
type API struct {
	Store    store.Store
	Auth     *auth.Service
	OIDC     *google.OIDC // nil si google no está configurado
	Cache    cache.Client
	CacheTTL time.Duration
	Mail     email.Sender

	// FrontendOrigins son los origins válidos como destino del redirect
	// post-login (los mismos del CORS).
	FrontendOrigins []string
}
