// Package jwt emite y valida las credenciales de sesión de Ergiva.
//
// El token es un JWT HS256 autocontenido con {id, email, is_admin, exp}.
// No hay tabla de sesiones ni revocación server-side: la validez es firma +
// expiración, y el logout es descarte client-side de la credencial. La
// autorización real siempre re-lee el usuario por id (middleware RequireAuth),
// así un is_admin viejo embebido en un token no escala privilegios.
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL es la expiración de sesión por defecto.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken cubre firma inválida, token malformado y expiración.
// Para el gate de requests son todos el mismo caso: "invalid_or_expired".
var ErrInvalidToken = errors.New("invalid_or_expired")

// Claims es el payload de la credencial de sesión. Email e is_admin son
// informativos (snapshot al momento de emisión): nunca autoritativos para
// autorizar.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwtv5.RegisteredClaims
}

// UserID retorna el id de usuario al que está atada la credencial.
func (c *Claims) UserID() string { return c.Subject }

// Issuer firma y valida tokens con un secreto y TTL fijos, pasados por
// configuración en el constructor (nada de estado global).
type Issuer struct {
	secret []byte
	ttl    time.Duration

	// now es reemplazable en tests.
	now func() time.Time
}

// NewIssuer crea un Issuer. Con ttl <= 0 usa DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL retorna la duración de las credenciales emitidas.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue emite una credencial atada al usuario. Determinístico dado el mismo
// usuario, reloj y secreto; no toca el store.
func (i *Issuer) Issue(userID, email string, isAdmin bool) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return tk.SignedString(i.secret)
}

// Verify valida firma y expiración y retorna las claims.
// Cualquier falla (malformado, firma, expirado) → ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Claims, error) {
	var claims Claims
	tok, err := jwtv5.ParseWithClaims(token, &claims, func(t *jwtv5.Token) (any, error) {
		return i.secret, nil
	}, jwtv5.WithValidMethods([]string{"HS256"}), jwtv5.WithTimeFunc(i.now))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
