// Package app wires the auth service together: config, logging, store,
// signer, services, and the HTTP server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkmark/linkmark/internal/auth/audit"
	authapi "github.com/linkmark/linkmark/internal/auth/http"
	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/internal/auth/store/drivers/jsonfile"
	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer
	audit  audit.Sink

	registrationService *service.RegistrationService
	authService         *service.AuthService

	server *http.Server
	router *authapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "linkmark-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	db, err := jsonfile.New(cfg.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}
	app.db = db

	signer, err := jwtx.NewSigner([]byte(cfg.SessionSecret), cfg.Issuer, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer

	app.audit = audit.NewFileSink(cfg.AuditLogFile, app.logger)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing user store", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initServices() {
	app.registrationService = &service.RegistrationService{
		Store: app.db,
		Audit: app.audit,
	}
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
		Audit:  app.audit,
	}
}

func (app *Application) initHTTP() {
	app.router = authapi.NewRouter(app.signer, BuildVersion, app.db, app.logger)
	app.router.RegistrationService = app.registrationService
	app.router.AuthService = app.authService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
