package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/nursesim/prontuario/internal/config"
	"github.com/nursesim/prontuario/internal/domain/alta"
	"github.com/nursesim/prontuario/internal/domain/anotacao"
	"github.com/nursesim/prontuario/internal/domain/biblioteca"
	"github.com/nursesim/prontuario/internal/domain/escalas"
	"github.com/nursesim/prontuario/internal/domain/prontuario"
	"github.com/nursesim/prontuario/internal/domain/sae"
	"github.com/nursesim/prontuario/internal/platform/db"
	"github.com/nursesim/prontuario/internal/platform/docstore"
	"github.com/nursesim/prontuario/internal/platform/middleware"
	"github.com/nursesim/prontuario/internal/platform/rest"
	"github.com/nursesim/prontuario/internal/platform/telemetry"
)

const (
	serviceName = "prontuario"
	version     = "0.1.0"
)

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := telemetry.NewLogger(os.Stdout, cfg.ResolvedLogFormat(), cfg.LogLevel, serviceName)
	telemetry.SetGlobal(logger)

	ctx := context.Background()
	store, pool, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open document store")
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to close document store")
		}
	}()
	logger.Info().Str("backend", store.Kind()).Msg("document store ready")

	var collector *telemetry.Collector
	if cfg.MetricsEnabled {
		collector = telemetry.NewCollector(serviceName)
	}

	e, err := newServer(ctx, cfg, store, pool, collector, logger)
	if err != nil {
		return err
	}

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openStore connects the configured backend. The pool is returned only for
// postgres, where pending migrations are applied before serving.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*docstore.Store, *pgxpool.Pool, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return docstore.NewMemoryStore(), nil, nil
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, err
		}
		applied, err := db.NewMigrator(pool, cfg.MigrationsDir).Up(ctx)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info().Int("applied", applied).Msg("migrations up to date")
		return docstore.NewPostgresStore(pool), pool, nil
	case config.BackendMongo:
		store, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		return store, nil, err
	case config.BackendCouchbase:
		store, err := docstore.ConnectCouchbase(docstore.CouchbaseConfig{
			URL:      cfg.CouchbaseURL,
			Username: cfg.CouchbaseUsername,
			Password: cfg.CouchbasePassword,
			Bucket:   cfg.CouchbaseBucket,
			Scope:    cfg.CouchbaseScope,
		})
		return store, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// newServer opens one collection per aggregate and registers every route.
// collector may be nil, which disables request metrics and /metrics.
func newServer(ctx context.Context, cfg *config.Config, store *docstore.Store, pool *pgxpool.Pool, collector *telemetry.Collector, logger zerolog.Logger) (*echo.Echo, error) {
	prontuarios, err := docstore.Open[prontuario.Record](ctx, store, prontuario.Collection)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", prontuario.Collection, err)
	}
	saes, err := docstore.Open[sae.Record](ctx, store, sae.Collection, sae.FieldProntuario)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", sae.Collection, err)
	}
	altas, err := docstore.Open[alta.Report](ctx, store, alta.Collection, alta.FieldProntuario)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", alta.Collection, err)
	}
	anotacoes, err := docstore.Open[anotacao.Note](ctx, store, anotacao.Collection, anotacao.FieldProntuario)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", anotacao.Collection, err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = rest.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Metrics(collector))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/store", db.HealthHandler(store, pool))
	if collector != nil {
		e.GET("/metrics", echo.WrapHandler(collector.Handler()))
	}

	api := e.Group("/api")
	prontuario.NewHandler(prontuario.NewService(prontuario.NewRepository(prontuarios), collector)).RegisterRoutes(api)
	sae.NewHandler(sae.NewService(sae.NewRepository(saes), collector)).RegisterRoutes(api)
	alta.NewHandler(alta.NewService(alta.NewRepository(altas), collector)).RegisterRoutes(api)
	anotacao.NewHandler(anotacao.NewService(anotacao.NewRepository(anotacoes), collector)).RegisterRoutes(api)
	escalas.NewHandler(collector).RegisterRoutes(api)
	biblioteca.NewHandler(biblioteca.NewCatalog(time.Now())).RegisterRoutes(api)

	return e, nil
}
