package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier compara una contraseña presentada contra la credencial
// almacenada. Pluggable: el modo se elige por config (admin.password_mode).
type PasswordVerifier interface {
	Verify(stored, presented string) bool
}

// BcryptVerifier es el verificador por defecto: stored es un hash bcrypt.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// PlaintextVerifier compara en texto plano (tiempo constante). Existe solo
// por compatibilidad con despliegues legacy que guardaban la contraseña sin
// hashear; el server loguea un warning al arrancar en este modo.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// HashPassword genera el hash bcrypt para sembrar cuentas admin (cmd seed).
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
