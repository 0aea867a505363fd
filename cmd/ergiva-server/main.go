// ergiva-server es el binario del backend de Ergiva: API REST de catálogo,
// pedidos y reservas de fisioterapia, con login por Google y panel admin.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	authsvc "github.com/ergiva/ergiva-server/internal/auth"
	"github.com/ergiva/ergiva-server/internal/cache"
	"github.com/ergiva/ergiva-server/internal/config"
	"github.com/ergiva/ergiva-server/internal/email"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/http/handlers"
	"github.com/ergiva/ergiva-server/internal/http/router"
	"github.com/ergiva/ergiva-server/internal/identity"
	jwtx "github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/oauth/google"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
	"github.com/ergiva/ergiva-server/internal/rate"
	"github.com/ergiva/ergiva-server/internal/store"
	_ "github.com/ergiva/ergiva-server/internal/store/memory"
	pgdriver "github.com/ergiva/ergiva-server/internal/store/pg"
	"github.com/ergiva/ergiva-server/migrations"
)

func main() {
	// .env es opcional: en producción las vars vienen del entorno real.
	_ = godotenv.Load()

	var cfgPath string

	root := &cobra.Command{
		Use:           "ergiva-server",
		Short:         "Backend de Ergiva (catálogo, pedidos y fisioterapia a domicilio)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "ruta al YAML de configuración")

	root.AddCommand(serveCmd(&cfgPath), migrateCmd(&cfgPath), seedCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cargando config %s: %w", path, err)
	}
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "ergiva-server",
	})
	return cfg, nil
}

func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			secret, insecure := cfg.JWTSecret()
			if insecure {
				logger.L().Warn("ERGIVA_JWT_SECRET no configurado: usando el secreto de fallback, NO apto para producción")
			}
			issuer := jwtx.NewIssuer(secret, config.Duration(cfg.JWT.TTL))

			st, err := store.Open(ctx, store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
			if err != nil {
				return fmt.Errorf("abriendo store %s: %w", cfg.Storage.Driver, err)
			}
			defer st.Close()

			cacheClient, err := cache.New(cache.Config{
				Kind:     cfg.Cache.Kind,
				Addr:     cfg.Cache.Redis.Addr,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
				Prefix:   cfg.Cache.Redis.Prefix,
			})
			if err != nil {
				return fmt.Errorf("abriendo cache %s: %w", cfg.Cache.Kind, err)
			}
			defer func() { _ = cacheClient.Close() }()

			var verifier authsvc.PasswordVerifier = authsvc.BcryptVerifier{}
			if cfg.Admin.PasswordMode == "plaintext" {
				logger.L().Warn("admin.password_mode=plaintext: passwords admin sin hashear, solo para entornos legacy")
				verifier = authsvc.PlaintextVerifier{}
			}

			users := st.Users()
			resolver := identity.NewResolver(users)
			authService := authsvc.NewService(users, resolver, issuer, verifier)

			var oidc *google.OIDC
			if cfg.Google.ClientID != "" && cfg.Google.ClientSecret != "" {
				oidc = google.New(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
			} else {
				logger.L().Warn("google client no configurado: login social deshabilitado")
			}

			var sender email.Sender = email.NopSender{}
			if cfg.SMTP.Enabled {
				sender = email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.User, cfg.SMTP.Pass)
			}

			var limiter rate.Limiter
			if cfg.Rate.Enabled {
				max, window := cfg.Rate.Login.Limit, config.Duration(cfg.Rate.Login.Window)
				if rc, ok := cacheClient.(interface{ Redis() *rdb.Client }); ok {
					limiter = rate.NewRedisLimiter(rc.Redis(), "rl:login", max, window)
				} else {
					limiter = rate.NewMemoryLimiter(max, window)
				}
			}

			api := &handlers.API{
				Store:           st,
				Auth:            authService,
				OIDC:            oidc,
				Cache:           cacheClient,
				CacheTTL:        config.Duration(cfg.Cache.TTL),
				Mail:            sender,
				FrontendOrigins: cfg.Server.CORSAllowedOrigins,
			}

			handler := router.New(router.Options{
				API:                api,
				Issuer:             issuer,
				CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
				LoginLimiter:       limiter,
				Metrics:            httpx.RegisterMetrics(nil),
			})

			logger.L().Info("ergiva-server listo",
				logger.String("addr", cfg.Server.Addr),
				logger.String("storage", cfg.Storage.Driver),
				logger.String("cache", cfg.Cache.Kind),
			)
			return httpx.Serve(ctx, httpx.ServerConfig{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     config.Duration(cfg.Server.ReadTimeout),
				WriteTimeout:    config.Duration(cfg.Server.WriteTimeout),
				ShutdownTimeout: config.Duration(cfg.Server.ShutdownTimeout),
			}, handler)
		},
	}
}

func migrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes del esquema postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate requiere storage.driver postgres (actual: %s)", cfg.Storage.Driver)
			}

			ctx := cmd.Context()
			st, err := pgdriver.Open(ctx, cfg.Storage.DSN)
			if err != nil {
				return err
			}
			defer st.Close()

			applied, err := st.Migrate(ctx, migrations.Postgres)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("sin migraciones pendientes")
				return nil
			}
			for _, name := range applied {
				fmt.Println("aplicada:", name)
			}
			return nil
		},
	}
}

func seedCmd(cfgPath *string) *cobra.Command {
	var (
		adminEmail string
		adminName  string
		adminPass  string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Siembra (o promueve) la cuenta admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("seed requiere storage.driver postgres (actual: %s)", cfg.Storage.Driver)
			}
			if adminPass == "" {
				adminPass = strings.TrimSpace(os.Getenv("ERGIVA_ADMIN_PASSWORD"))
			}
			if adminEmail == "" || adminPass == "" {
				return fmt.Errorf("faltan --email y password (flag --password o env ERGIVA_ADMIN_PASSWORD)")
			}

			hash := adminPass
			if cfg.Admin.PasswordMode == "bcrypt" {
				hash, err = authsvc.HashPassword(adminPass)
				if err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			st, err := pgdriver.Open(ctx, cfg.Storage.DSN)
			if err != nil {
				return err
			}
			defer st.Close()

			u, err := st.SeedAdmin(ctx, adminEmail, adminName, hash)
			if err != nil {
				return err
			}
			fmt.Printf("admin listo: %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&adminEmail, "email", "", "email de la cuenta admin")
	cmd.Flags().StringVar(&adminName, "name", "Ergiva Admin", "nombre de la cuenta admin")
	cmd.Flags().StringVar(&adminPass, "password", "", "password admin (o env ERGIVA_ADMIN_PASSWORD)")
	return cmd
}
