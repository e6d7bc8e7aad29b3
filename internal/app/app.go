package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"mpesa-gateway/internal/auditors"
	"mpesa-gateway/internal/callbacks"
	"mpesa-gateway/internal/dispatchers"
	"mpesa-gateway/internal/gateways"
	internalhttp "mpesa-gateway/internal/http"
	"mpesa-gateway/internal/shared/configs"
	"mpesa-gateway/internal/shared/databases"
	"mpesa-gateway/internal/shared/filestorages"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/stores"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaTimeout = 30 * time.Second

// auditStore is the single backend serving both the audit log and the callback log.
type auditStore interface {
	stores.AuditLogStore
	stores.CallbackLogStore
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	pool      *pgxpool.Pool
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "mpesa-gateway").
		Logger()

	app := &App{
		config:    config,
		appLogger: appLogger,
	}

	// Initialize audit log store
	store, err := app.newAuditStore(config.Storage)
	if err != nil {
		return nil, err
	}

	// Initialize daraja client
	httpClient := &http.Client{Timeout: config.Mpesa.HTTPClientTimeout()}
	gatewayClient := gateways.NewDarajaClient(config.Mpesa, httpClient)

	// Initialize services
	dispatchService := dispatchers.NewDispatchService(gatewayClient, store)
	auditService := auditors.NewAuditService(store)
	callbackService := callbacks.NewCallbackService(config.Webhook.Secret, store, store)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(dispatchService, auditService, callbackService, httpLogger)

	app.server = &http.Server{
		Addr:              net.JoinHostPort(config.Server.Host, strconv.Itoa(config.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return app, nil
}

func (app *App) newAuditStore(config configs.StorageConfig) (auditStore, error) {
	switch config.Driver {
	case configs.StorageDriverFile:
		fileStorage, err := filestorages.NewFileStorage(config.RootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return stores.NewFileAuditLogStore(fileStorage), nil

	case configs.StorageDriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		pool, err := databases.NewPostgresPool(ctx, config.DatabaseURL, databases.PoolOptions{
			MaxConns:        config.MaxConns,
			MaxConnIdleTime: time.Duration(config.MaxConnIdleTime) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		store := stores.NewPostgresAuditLogStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		app.pool = pool
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", config.Driver)
	}
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Str(loggers.FieldEnvironment, app.config.Mpesa.Environment).
		Msgf("Starting mpesa-gateway on %s (log_level=%s, storage_driver=%s)",
			app.server.Addr,
			app.config.Log.Level,
			app.config.Storage.Driver)

	if app.config.Webhook.Secret == "" {
		app.appLogger.Warn().Msg("webhook secret is not configured, callbacks will be rejected")
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Release database connections
	if app.pool != nil {
		app.pool.Close()
		app.appLogger.Info().Msg("Database pool closed")
	}

	return nil
}
