// Package identity resuelve perfiles de un proveedor externo (Google) a
// exactamente un usuario interno.
//
// El orden de resolución importa y es observable:
//
//  1. Match por google_id → retorna el usuario tal cual (sin refrescar
//     nombre/foto).
//  2. Match por email → vincula el google_id y pisa la foto (incondicional),
//     retorna el usuario actualizado.
//  3. Sin match → crea el usuario.
//
// Los pasos 2 y 3 no son atómicos entre sí: dos resoluciones concurrentes
// para el mismo email nuevo pueden intentar crear las dos. La constraint
// UNIQUE del store hace que la perdedora reciba ErrConflict, y acá se
// reintenta una única vez desde el paso 1 (el usuario ganador ya existe y
// se encuentra).
package identity

import (
	"context"
	"fmt"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

// Profile es la asserción de identidad que entrega el proveedor externo
// después de su propia ceremonia de autenticación. El email viene verificado
// por el proveedor y se confía como tal.
type Profile struct {
	ProviderID  string // "sub" de Google, estable por cuenta
	Email       string
	DisplayName string
	PictureURL  string
}

// ResolutionError envuelve una falla de persistencia durante la resolución.
// Para el caller la resolución es atómica: si falla, no hay estado parcial
// que le sirva.
type ResolutionError struct {
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("identity: resolution failed: %v", e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// Resolver mapea perfiles externos a usuarios. No escribe IsAdmin jamás:
// el flag se siembra fuera de banda y solo se lee.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver crea un Resolver sobre el repositorio de usuarios.
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve mapea el perfil a exactamente un usuario, creándolo si hace falta.
// A lo sumo un write por llamada exitosa. Cualquier falla del store retorna
// *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, p Profile) (*repository.User, error) {
	u, err := r.resolve(ctx, p)
	if err == nil {
		return u, nil
	}
	if !repository.IsConflict(err) {
		return nil, &ResolutionError{Cause: err}
	}

	// Perdimos una carrera de creación: el registro ganador ya existe,
	// un único reintento desde el paso 1 lo encuentra.
	logger.From(ctx).Debug("identity resolution conflict, retrying",
		logger.Email(p.Email))
	u, err = r.resolve(ctx, p)
	if err != nil {
		return nil, &ResolutionError{Cause: err}
	}
	return u, nil
}

func (r *Resolver) resolve(ctx context.Context, p Profile) (*repository.User, error) {
	// 1. google_id ya vinculado → sin refresh de perfil en este camino.
	u, err := r.users.GetByGoogleID(ctx, p.ProviderID)
	if err == nil {
		return u, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	// 2. Cuenta existente por email → vincular google_id y pisar la foto.
	u, err = r.users.GetByEmail(ctx, p.Email)
	if err == nil {
		return r.users.UpdateGoogleIDAndPicture(ctx, u.ID, p.ProviderID, p.PictureURL)
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	// 3. Usuario nuevo.
	return r.users.Create(ctx, repository.CreateUserInput{
		GoogleID: p.ProviderID,
		Email:    p.Email,
		Name:     p.DisplayName,
		Picture:  p.PictureURL,
	})
}
