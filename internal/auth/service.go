// Package auth agrupa los dos caminos de emisión de credenciales: login
// social (Google → resolver de identidad) y login admin por password.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/identity"
	"github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

// ErrInvalidCredentials cubre todos los rechazos del login admin (cuenta
// inexistente, sin flag admin, password incorrecta). Un solo error para no
// filtrar cuáles cuentas existen.
var ErrInvalidCredentials = errors.New("invalid_credentials")

// Service emite credenciales de sesión.
type Service struct {
	users    repository.UserRepository
	resolver *identity.Resolver
	issuer   *jwt.Issuer
	verifier PasswordVerifier
}

// NewService arma el servicio de autenticación.
func NewService(users repository.UserRepository, resolver *identity.Resolver, issuer *jwt.Issuer, verifier PasswordVerifier) *Service {
	return &Service{users: users, resolver: resolver, issuer: issuer, verifier: verifier}
}

// TokenTTL retorna la vigencia de las credenciales que emite el servicio.
func (s *Service) TokenTTL() time.Duration { return s.issuer.TTL() }

// LoginWithGoogle resuelve el perfil a un usuario y emite la credencial.
// El flag is_admin del token es el del registro recién resuelto: si cambia
// después, se autocorrige en el próximo request validado (RequireAuth
// siempre re-lee por id).
func (s *Service) LoginWithGoogle(ctx context.Context, p identity.Profile) (string, *repository.User, error) {
	u, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issuer.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	logger.From(ctx).Info("google login", logger.UserID(u.ID))
	return token, u, nil
}

// AdminLogin emite una credencial para una cuenta admin pre-sembrada.
// Bypasea el resolver (no hay proveedor externo) pero respeta las mismas
// invariantes de unicidad: opera solo sobre registros existentes.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (string, *repository.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !u.IsAdmin || u.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !s.verifier.Verify(*u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	logger.From(ctx).Info("admin login", logger.UserID(u.ID))
	return token, u, nil
}
