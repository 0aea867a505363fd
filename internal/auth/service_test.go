package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/ergiva/ergiva-server/internal/auth"
	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/identity"
	jwtx "github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/store/memory"
)

func newService(t *testing.T, st *memory.Store, verifier auth.PasswordVerifier) *auth.Service {
	t.Helper()
	users := st.Users()
	issuer := jwtx.NewIssuer("test-secret", time.Hour)
	return auth.NewService(users, identity.NewResolver(users), issuer, verifier)
}

func seedAdmin(st *memory.Store, email, hash string) {
	st.SeedUser(repository.User{
		ID:           "adm",
		Email:        email,
		Name:         "Admin",
		IsAdmin:      true,
		PasswordHash: &hash,
	})
}

func TestAdminLogin_OK(t *testing.T) {
	st := memory.New()
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	seedAdmin(st, "admin@ergiva.com", hash)
	svc := newService(t, st, auth.BcryptVerifier{})

	token, u, err := svc.AdminLogin(context.Background(), "admin@ergiva.com", "hunter22")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if token == "" || u.ID != "adm" {
		t.Fatalf("login inconsistente: token=%q user=%+v", token, u)
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	st := memory.New()
	hash, _ := auth.HashPassword("hunter22")
	seedAdmin(st, "admin@ergiva.com", hash)
	svc := newService(t, st, auth.BcryptVerifier{})

	if _, _, err := svc.AdminLogin(context.Background(), "admin@ergiva.com", "nope"); err != auth.ErrInvalidCredentials {
		t.Fatalf("err = %v, quiero ErrInvalidCredentials", err)
	}
}

func TestAdminLogin_UnknownAccount(t *testing.T) {
	st := memory.New()
	svc := newService(t, st, auth.BcryptVerifier{})

	if _, _, err := svc.AdminLogin(context.Background(), "nadie@ergiva.com", "x"); err != auth.ErrInvalidCredentials {
		t.Fatalf("cuenta inexistente: err = %v, quiero ErrInvalidCredentials", err)
	}
}

// Un usuario común con password seteada igual es rechazado: el camino admin
// exige el flag.
func TestAdminLogin_RejectsNonAdmin(t *testing.T) {
	st := memory.New()
	hash, _ := auth.HashPassword("hunter22")
	st.SeedUser(repository.User{
		ID:           "u1",
		Email:        "comun@example.com",
		IsAdmin:      false,
		PasswordHash: &hash,
	})
	svc := newService(t, st, auth.BcryptVerifier{})

	if _, _, err := svc.AdminLogin(context.Background(), "comun@example.com", "hunter22"); err != auth.ErrInvalidCredentials {
		t.Fatalf("no-admin: err = %v, quiero ErrInvalidCredentials", err)
	}
}

// Cuenta admin vinculada solo a Google (sin password): el camino por
// password no aplica.
func TestAdminLogin_AdminWithoutPassword(t *testing.T) {
	st := memory.New()
	st.SeedUser(repository.User{ID: "adm", Email: "admin@ergiva.com", IsAdmin: true})
	svc := newService(t, st, auth.BcryptVerifier{})

	if _, _, err := svc.AdminLogin(context.Background(), "admin@ergiva.com", "lo-que-sea"); err != auth.ErrInvalidCredentials {
		t.Fatalf("sin password_hash: err = %v, quiero ErrInvalidCredentials", err)
	}
}

func TestAdminLogin_PlaintextMode(t *testing.T) {
	st := memory.New()
	seedAdmin(st, "admin@ergiva.com", "legacy-pass")
	svc := newService(t, st, auth.PlaintextVerifier{})

	if _, _, err := svc.AdminLogin(context.Background(), "admin@ergiva.com", "legacy-pass"); err != nil {
		t.Fatalf("AdminLogin plaintext: %v", err)
	}
	if _, _, err := svc.AdminLogin(context.Background(), "admin@ergiva.com", "otra"); err != auth.ErrInvalidCredentials {
		t.Fatalf("plaintext mal: err = %v, quiero ErrInvalidCredentials", err)
	}
}

func TestLoginWithGoogle_IssuesVerifiableToken(t *testing.T) {
	st := memory.New()
	svc := newService(t, st, auth.BcryptVerifier{})

	token, u, err := svc.LoginWithGoogle(context.Background(), identity.Profile{
		ProviderID: "g-1",
		Email:      "ana@example.com",
		DisplayName: "Ana",
	})
	if err != nil {
		t.Fatalf("LoginWithGoogle: %v", err)
	}

	issuer := jwtx.NewIssuer("test-secret", time.Hour)
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID() != u.ID || claims.Email != "ana@example.com" || claims.IsAdmin {
		t.Fatalf("claims inconsistentes: %+v", claims)
	}
}
