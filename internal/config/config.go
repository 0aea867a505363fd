// Package config carga la configuración YAML de Ergiva con overrides por
// variables de entorno para secretos.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FallbackJWTSecret es el secreto de firma usado cuando no hay ninguno
// configurado. Es un default INSEGURO a propósito (compat con despliegues
// legacy); el server loguea un warning al arrancar con él.
const FallbackJWTSecret = "ergiva-dev-secret"

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Driver string `yaml:"driver"` // "postgres" | "memory"
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // "memory" | "redis"
		TTL   string `yaml:"ttl"`  // TTL del cache de catálogo
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		// Secret viene normalmente por env ERGIVA_JWT_SECRET; si queda vacío
		// se usa FallbackJWTSecret (inseguro, ver doc de la constante).
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"` // default 24h
	} `yaml:"jwt"`

	Google struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RedirectURL  string `yaml:"redirect_url"`
	} `yaml:"google"`

	Admin struct {
		// PasswordMode: "bcrypt" (default) o "plaintext" (compat legacy,
		// loguea warning al arrancar).
		PasswordMode string `yaml:"password_mode"`
	} `yaml:"admin"`

	Rate struct {
		Enabled bool   `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	SMTP struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		From    string `yaml:"from"`
		User    string `yaml:"user"`
		Pass    string `yaml:"pass"`
	} `yaml:"smtp"`
}

// Load lee el YAML, aplica defaults, overrides por env y valida.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "15s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "2m"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "24h"
	}
	if c.Admin.PasswordMode == "" {
		c.Admin.PasswordMode = "bcrypt"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}

	c.applyEnvOverrides()

	// validate string durations
	for _, d := range []string{
		c.Server.ReadTimeout, c.Server.WriteTimeout, c.Server.ShutdownTimeout,
		c.Cache.TTL, c.JWT.TTL, c.Rate.Login.Window,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return nil, fmt.Errorf("config: duración inválida %q: %w", d, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyEnvOverrides pisa valores sensibles con variables de entorno.
// Los secretos nunca deberían vivir en el YAML commiteado.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("ERGIVA_JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("ERGIVA_DB_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("GOOGLE_CLIENT_ID"); ok {
		c.Google.ClientID = v
	}
	if v, ok := getEnvStr("GOOGLE_CLIENT_SECRET"); ok {
		c.Google.ClientSecret = v
	}
	if v, ok := getEnvStr("ERGIVA_SMTP_PASS"); ok {
		c.SMTP.Pass = v
	}
	if v, ok := getEnvInt("ERGIVA_SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("ERGIVA_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
}

// Validate chequea combinaciones imposibles.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: storage.driver postgres requiere dsn")
		}
	case "memory":
	default:
		return fmt.Errorf("config: storage.driver desconocido %q", c.Storage.Driver)
	}
	switch c.Cache.Kind {
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return fmt.Errorf("config: cache.kind redis requiere addr")
		}
	default:
		return fmt.Errorf("config: cache.kind desconocido %q", c.Cache.Kind)
	}
	switch c.Admin.PasswordMode {
	case "bcrypt", "plaintext":
	default:
		return fmt.Errorf("config: admin.password_mode desconocido %q", c.Admin.PasswordMode)
	}
	return nil
}

// JWTSecret retorna el secreto efectivo y si es el fallback inseguro.
func (c *Config) JWTSecret() (secret string, insecure bool) {
	if s := strings.TrimSpace(c.JWT.Secret); s != "" {
		return s, false
	}
	return FallbackJWTSecret, true
}

// Duration parsea una duración ya validada por Load.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
