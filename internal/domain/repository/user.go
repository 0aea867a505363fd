package repository

import (
	"context"
	"time"
)

// User representa una cuenta de Ergiva.
//
// GoogleID vacío significa que la cuenta todavía no fue vinculada a Google
// (cuentas admin pre-sembradas). Una vez vinculado, el GoogleID nunca se
// reasigna a otro usuario.
type User struct {
	ID           string
	GoogleID     string // "" = sin vincular; único cuando está presente
	Email        string // único en toda la tabla
	Name         string
	Picture      string
	Phone        string
	Address      string
	IsAdmin      bool
	PasswordHash *string // solo cuentas admin con login por password
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput contiene los datos para crear un usuario.
// El resolver de identidad nunca setea IsAdmin: el flag se siembra fuera de
// banda (cmd seed) y solo se lee durante la resolución.
type CreateUserInput struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// UpdateProfileInput contiene los campos de perfil editables por el propio
// usuario. Email, picture, google_id e is_admin no se tocan por esta vía.
type UpdateProfileInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// GetByGoogleID busca un usuario por su identificador de Google.
	// Retorna ErrNotFound si no existe.
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)

	// GetByEmail busca un usuario por email.
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca un usuario por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*User, error)

	// Create crea un usuario nuevo.
	// Retorna ErrConflict si el email o el google_id ya existen.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// UpdateGoogleIDAndPicture vincula un google_id a un usuario existente y
	// sobreescribe su picture (incondicional, aunque ya tuviera una).
	// Retorna ErrConflict si el google_id ya pertenece a otro usuario.
	UpdateGoogleIDAndPicture(ctx context.Context, userID, googleID, picture string) (*User, error)

	// UpdateProfile actualiza name/phone/address del usuario.
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error)
}
