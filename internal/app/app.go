package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"ratpdash/internal/config"
	"ratpdash/internal/dataprocessing"
	apierrors "ratpdash/internal/errors"
	"ratpdash/internal/infrastructure"
	customMiddleware "ratpdash/internal/middleware"
	"ratpdash/internal/services"
	handlers "ratpdash/internal/transport/http"
	"ratpdash/pkg/contracts"
)

// AppName is the display name of the dashboard
const AppName = "RATP validations dashboard"

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Logger           *slog.Logger
	Table            *dataprocessing.Table
	Router           *chi.Mux
	Server           *http.Server
	OTelProviders    *infrastructure.OTelProviders
	Metrics          *infrastructure.DashboardMetrics
	ErrorHandler     *apierrors.ErrorHandler
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
}

// NewApplication loads the validations export and wires the HTTP server.
// A load failure is returned before anything is served.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("csv_path", cfg.Data.CSVPath))

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.NewOTelConfig(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewDashboardMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard metrics: %w", err)
	}

	start := time.Now()
	table, err := dataprocessing.ParseFile(cfg.Data.CSVPath, dataprocessing.ParseOptions{
		Delimiter: cfg.Data.DelimiterRune(),
	})
	if err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to load validations: %w", err)
	}
	logger.Info("Validations loaded",
		slog.Int("rows", table.Len()),
		slog.Any("months", table.Months()),
		slog.Duration("duration", time.Since(start)))

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		Table:         table,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes the application services
func (a *Application) initializeServices() {
	a.DashboardService = services.NewDashboardService(a.Table, services.DashboardOptions{
		TopStops: a.Config.Data.TopStops,
		PageSize: a.Config.Data.PageSize,
		Metrics:  a.Metrics,
		Tracer:   a.OTelProviders.Tracer,
	}, a.Logger)

	a.HealthService = services.NewHealthService(contracts.Version, a.Config.Data.CSVPath, a.DashboardService, a.Logger)
}

// setupRouter configures the router and its middleware chain
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// RequestID → RealIP → Logger → Recoverer → OTel → security → rate limit → timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(a.ErrorHandler.RecoveryMiddleware)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(a.getCORSConfig()))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
	r.Use(customMiddleware.Compress(5))

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupRoutes(r)

	a.Router = r
}

// setupRoutes registers the page, chart, API and metrics routes
func (a *Application) setupRoutes(r chi.Router) {
	pageSize := a.Config.Data.PageSize

	dashboard := handlers.NewDashboardHandler(a.DashboardService, pageSize, a.Logger, a.ErrorHandler)
	chartHandler := handlers.NewChartHandler(a.DashboardService, a.Logger, a.ErrorHandler)
	dataHandler := handlers.NewDataHandler(a.DashboardService, pageSize, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Method(http.MethodGet, "/", dashboard)
	r.Mount("/charts", chartHandler.Routes())

	api := dataHandler.Routes()
	api.Get("/health", healthHandler.HealthCheck)
	api.Get("/health/live", healthHandler.LivenessCheck)
	api.Get("/health/ready", healthHandler.ReadinessCheck)
	api.Get("/version", healthHandler.Version)
	r.Mount("/api", api)

	r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(a.OTelProviders.MetricsHandler, a.ErrorHandler))
}

// getCORSConfig builds the CORS settings from the security section
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	cfg := customMiddleware.CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		Logger:         a.Logger,
	}

	if a.Config.Security.EnableCORS {
		cfg.AllowedOrigins = a.Config.Security.AllowedOrigins
	}

	a.Logger.Info("CORS configured",
		slog.Bool("enabled", a.Config.Security.EnableCORS),
		slog.Any("allowed_origins", cfg.AllowedOrigins))

	return cfg
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "HTTP server listening",
			slog.String("address", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("Shutting down application")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown stops the HTTP server and flushes telemetry
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.Logger.Info("Application shutdown complete")
	return errors.Join(errs...)
}
