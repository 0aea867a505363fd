package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ergiva/ergiva-server/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("escribiendo config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "app: {}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.JWT.TTL != "24h" {
		t.Fatalf("jwt ttl = %q", cfg.JWT.TTL)
	}
	if cfg.Admin.PasswordMode != "bcrypt" {
		t.Fatalf("password_mode = %q", cfg.Admin.PasswordMode)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	_, err := config.Load(writeConfig(t, "storage:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("postgres sin dsn debió fallar")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	_, err := config.Load(writeConfig(t, "storage:\n  driver: oracle\n"))
	if err == nil {
		t.Fatal("driver desconocido debió fallar")
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	_, err := config.Load(writeConfig(t, "jwt:\n  ttl: un-rato\n"))
	if err == nil {
		t.Fatal("duración inválida debió fallar")
	}
}

func TestLoad_EnvOverridesSecret(t *testing.T) {
	t.Setenv("ERGIVA_JWT_SECRET", "super-secreto")
	cfg, err := config.Load(writeConfig(t, "jwt:\n  secret: del-yaml\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	secret, insecure := cfg.JWTSecret()
	if secret != "super-secreto" || insecure {
		t.Fatalf("JWTSecret = (%q, %v)", secret, insecure)
	}
}

// Sin secreto configurado se usa el fallback y se marca como inseguro:
// el caller decide loguear el warning, nunca se endurece en silencio.
func TestJWTSecret_FallbackIsFlagged(t *testing.T) {
	t.Setenv("ERGIVA_JWT_SECRET", "")
	cfg, err := config.Load(writeConfig(t, "app: {}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	secret, insecure := cfg.JWTSecret()
	if secret != config.FallbackJWTSecret || !insecure {
		t.Fatalf("JWTSecret = (%q, %v), quiero el fallback marcado inseguro", secret, insecure)
	}
}
