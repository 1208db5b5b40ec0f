package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/endgor/azure-ip-lookup/internal/auth"
	"github.com/endgor/azure-ip-lookup/internal/azure"
	appdb "github.com/endgor/azure-ip-lookup/internal/db"
	"github.com/endgor/azure-ip-lookup/internal/domain"
	apihttp "github.com/endgor/azure-ip-lookup/internal/http"
)

type Config struct {
	Port            string
	DSN             string
	ServiceTagsPath string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration

	AuthEnabled bool
	Issuer      string
	Audience    string
	JWKSURL     string
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		DSN:             os.Getenv("DB_CONN"),
		Port:            os.Getenv("PORT"),
		ServiceTagsPath: os.Getenv("SERVICE_TAGS_PATH"),
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		AuthEnabled:     os.Getenv("AUTH_ENABLED") == "true",
		Issuer:          os.Getenv("AUTH_ISSUER"),
		Audience:        os.Getenv("AUTH_AUDIENCE"),
		JWKSURL:         os.Getenv("AUTH_JWKS_URL"),
	}

	if cfg.DSN == "" {
		log.Fatal("missing required environment variable: DB_CONN")
	}
	if cfg.ServiceTagsPath == "" {
		cfg.ServiceTagsPath = "data/ServiceTags_Public.json"
	}
	if cfg.Port == "" {
		cfg.Port = "4040"
	}
	return cfg
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

// Serve wires the application together and serves it on the given
// listener until ctx is cancelled. The listener is injected so tests
// can bind to an ephemeral port.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	index, err := azure.Load(cfg.ServiceTagsPath)
	if err != nil {
		return fmt.Errorf("load service tags: %w", err)
	}
	logger.Info("loaded azure service tags",
		"path", cfg.ServiceTagsPath,
		"cloud", index.Cloud(),
		"changeNumber", index.ChangeNumber(),
	)

	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	planning := domain.NewLoggingPlanningService(
		logger,
		domain.NewPlanningService(appdb.NewPlanRepository(pool), appdb.NewLeafRepository(pool)),
	)
	lookup := domain.NewLookupService(index)

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		return err
	}

	api := apihttp.NewAPI(logger, pool, planning, lookup, authenticator)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("serving http api", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "err", err.Error())
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	return auth.NewEntraAuthenticator(ctx, auth.Config{
		Enabled:  cfg.AuthEnabled,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		JWKSURL:  cfg.JWKSURL,
	})
}
