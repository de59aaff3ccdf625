package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"fitness-scheduler/common/logger"
	commonmetrics "fitness-scheduler/common/metrics"
	"fitness-scheduler/common/telemetry"
	"fitness-scheduler/internal/config"
	"fitness-scheduler/internal/db"
	"fitness-scheduler/internal/events"
	"fitness-scheduler/internal/health"
	"fitness-scheduler/internal/home"
	"fitness-scheduler/internal/kafka"
	"fitness-scheduler/internal/member"
	"fitness-scheduler/internal/messaging"
	"fitness-scheduler/internal/metrics"
	"fitness-scheduler/internal/middleware"
	"fitness-scheduler/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
)

// Models lists every table the service owns, in creation order.
var Models = []any{
	(*member.Member)(nil),
	(*session.Session)(nil),
}

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	logger    *slog.Logger
	db        *bun.DB
	publisher events.Publisher
	telemetry *telemetry.Telemetry
}

// Deps are the collaborators the router is built from.
type Deps struct {
	Config    *config.Config
	DB        *bun.DB
	Publisher events.Publisher
	Metrics   *commonmetrics.Metrics
	Domain    *metrics.Metrics
	Logger    *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler chain
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application", "git_commit", GitCommit, "build_time", BuildTime)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env, "events_backend", cfg.Events.Backend)

	ctx := context.Background()

	tel, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    ServiceName,
		ServiceVersion: Version,
		Env:            cfg.Env,
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
	}, slogLogger)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}

	domainMetrics, err := metrics.New(tel.Metrics.Meter())
	if err != nil {
		log.Fatalf("failed to initialize domain metrics: %v", err)
	}

	database := db.New(cfg.Database)

	if err := db.RunMigrations(ctx, database, Models...); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	if err := tel.Metrics.Database.RegisterDB(database.DB, tel.Metrics.Meter()); err != nil {
		slogLogger.Warn("failed to register connection pool metrics", "error", err)
	}
	if err := tel.Metrics.Health.RegisterDependencies(ctx, tel.Metrics.Meter(), health.DatabaseDependency); err != nil {
		slogLogger.Warn("failed to register dependency metrics", "error", err)
	}

	app := NewWithDeps(Deps{
		Config:    cfg,
		DB:        database,
		Publisher: newPublisher(cfg.Events, slogLogger, tel.Metrics),
		Metrics:   tel.Metrics,
		Domain:    domainMetrics,
		Logger:    slogLogger,
	})
	app.telemetry = tel

	slogLogger.Info("application initialized successfully")

	return app
}

// NewWithDeps assembles the router on top of an already opened database.
func NewWithDeps(d Deps) *App {
	if d.Publisher == nil {
		d.Publisher = events.Noop{}
	}
	if d.Metrics == nil {
		d.Metrics = commonmetrics.NewMock()
	}
	if d.Domain == nil {
		d.Domain = metrics.NewMock()
	}

	app := &App{
		config:    d.Config,
		router:    chi.NewRouter(),
		logger:    d.Logger,
		db:        d.DB,
		publisher: d.Publisher,
	}

	app.router.Use(chimw.RequestID)
	app.router.Use(chimw.Recoverer)
	app.router.Use(middleware.CORS(d.Config.Server.CORSOrigins))
	app.router.Use(middleware.RequestLogger(d.Logger))

	gateway := db.NewGateway(d.DB, d.Metrics)
	notifier := events.NewNotifier(d.Publisher, d.Logger)

	home.NewHandler().RegisterRoutes(app.router)
	health.NewHandler(gateway, d.Metrics).RegisterRoutes(app.router)

	memberService := member.NewService(member.NewRepository(gateway), notifier)
	member.NewHandler(memberService, d.Logger, d.Domain).RegisterRoutes(app.router)

	sessionService := session.NewService(session.NewRepository(gateway), notifier)
	session.NewHandler(sessionService, d.Logger, d.Domain).RegisterRoutes(app.router)

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", d.Config.Server.Port),
		Handler:      app.router,
		ReadTimeout:  time.Duration(d.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(d.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(d.Config.Server.IdleTimeout) * time.Second,
	}

	return app
}

// newPublisher falls back to dropping events when the broker is unreachable
// so the API keeps serving.
func newPublisher(cfg config.EventsConfig, logger *slog.Logger, m *commonmetrics.Metrics) events.Publisher {
	switch cfg.Backend {
	case "nats":
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger, m.Messaging)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return events.Noop{}
		}
		logger.Info("NATS producer initialized successfully")
		return producer
	case "kafka":
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger, m.Messaging)
		if err != nil {
			logger.Warn("failed to initialize Kafka producer", "error", err)
			return events.Noop{}
		}
		logger.Info("Kafka producer initialized successfully")
		return producer
	default:
		return events.Noop{}
	}
}

func (a *App) Router() http.Handler {
	return a.router
}

// Run serves until Shutdown is called. A server that was shut down before
// Run starts returns nil at once.
func (a *App) Run() error {
	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}
	db.Close(a.db)

	return errors.Join(errs...)
}
