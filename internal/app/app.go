package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/bloodwraith8851/gocart/internal/auth"
	"github.com/bloodwraith8851/gocart/internal/config"
	"github.com/bloodwraith8851/gocart/internal/event"
	handler "github.com/bloodwraith8851/gocart/internal/handler/http"
	"github.com/bloodwraith8851/gocart/internal/media"
	"github.com/bloodwraith8851/gocart/internal/media/imagekit"
	"github.com/bloodwraith8851/gocart/internal/media/memory"
	"github.com/bloodwraith8851/gocart/internal/repository/postgres"
	redisrepo "github.com/bloodwraith8851/gocart/internal/repository/redis"
	"github.com/bloodwraith8851/gocart/internal/service"
	"github.com/bloodwraith8851/gocart/migrations"
	"github.com/bloodwraith8851/gocart/pkg/database"
	"github.com/bloodwraith8851/gocart/pkg/health"
	pkgkafka "github.com/bloodwraith8851/gocart/pkg/kafka"
	"github.com/bloodwraith8851/gocart/pkg/middleware"
	"github.com/bloodwraith8851/gocart/pkg/tracing"
)

// App wires together all dependencies and runs the seller service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *goredis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "seller",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "seller")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	// Initialize Redis for the approved-seller cache. Failure is fatal only
	// because misconfiguration should surface at startup; at runtime the
	// service degrades to direct lookups on cache errors.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Select the media uploader.
	var uploader media.Uploader
	switch cfg.MediaProvider {
	case "imagekit":
		uploader = imagekit.New(imagekit.Config{
			PrivateKey:     cfg.ImageKitPrivateKey,
			URLEndpoint:    cfg.ImageKitURLEndpoint,
			UploadEndpoint: cfg.ImageKitUploadEndpoint,
		}, logger)
	case "memory":
		uploader = memory.New()
	default:
		pool.Close()
		return nil, fmt.Errorf("unknown media provider: %q", cfg.MediaProvider)
	}
	logger.Info("media uploader initialized", slog.String("provider", cfg.MediaProvider))

	// Build the dependency graph.
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	ratingRepo := postgres.NewRatingRepository(pool)

	sellerCache := redisrepo.NewSellerCache(rdb, time.Duration(cfg.SellerCacheTTLMins)*time.Minute)
	eventProducer := event.NewProducer(producer, logger)

	sellerService := service.NewSellerService(storeRepo, sellerCache, uploader, eventProducer, logger)
	catalogService := service.NewCatalogService(sellerService, productRepo, uploader, eventProducer, logger)
	dashboardService := service.NewDashboardService(sellerService, productRepo, orderRepo, ratingRepo, logger)
	adminService := service.NewAdminService(storeRepo, sellerCache, eventProducer, logger)

	jwtValidator := auth.NewJWTValidator(cfg.JWTSecret)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	// Event publishing is best effort, so a broker outage is visible in the
	// readiness body without taking the service out of rotation.
	healthHandler.RegisterInformational("kafka", producer.Ping)

	// HTTP router.
	router := handler.NewRouter(
		sellerService,
		catalogService,
		dashboardService,
		adminService,
		jwtValidator.Middleware(),
		healthHandler,
		logger,
		middleware.DefaultCORSConfig(),
		cfg.PprofAllowedCIDRs,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: HTTP server first so in-flight
// requests drain, then the tracer so their spans are flushed, then the
// producer and the data stores.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
