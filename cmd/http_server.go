package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/auth"
	authpostgres "github.com/nalharbi/inspection-management/internal/auth/postgres"
	"github.com/nalharbi/inspection-management/internal/core/events"
	"github.com/nalharbi/inspection-management/internal/manager"
	managerpostgres "github.com/nalharbi/inspection-management/internal/manager/postgres"
	"github.com/nalharbi/inspection-management/internal/round"
	roundpostgres "github.com/nalharbi/inspection-management/internal/round/postgres"
	"github.com/nalharbi/inspection-management/internal/transport/rest"
	"github.com/nalharbi/inspection-management/internal/transport/swagger"
	"github.com/nalharbi/inspection-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	lg := logger.L()

	if _, err := swagger.LoadSpec("api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	bus := events.NewBus(lg)
	registerAuditSubscribers(bus, lg)

	credentialRepo := authpostgres.NewCredentialRepository(gormDB)
	managerRepo := managerpostgres.NewManagerRepository(gormDB)
	roundRepo := roundpostgres.NewRoundRepository(gormDB)

	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(credentialRepo, tokens, cfg.Security.BCryptCost, lg)
	managerService := manager.NewService(managerRepo, roundRepo, bus, lg)
	roundService := round.NewService(roundRepo, managerRepo, bus, lg)

	authHandler := auth.NewHandler(authService)
	managerHandler := manager.NewHandler(managerService)
	roundHandler := round.NewHandler(roundService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, cfg, authHandler, managerHandler, roundHandler, lg)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// registerAuditSubscribers attaches the log-line subscriber every audit event
// flows through.
func registerAuditSubscribers(bus *events.Bus, lg *slog.Logger) {
	auditLog := func(ctx context.Context, event events.Event) error {
		lg.Info("audit event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(events.EventTypeRoundCreated, auditLog)
	bus.Subscribe(events.EventTypeManagerDeleted, auditLog)
}

// initDB opens the pgx-backed connection shared by gorm and the health probe.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
