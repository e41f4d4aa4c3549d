package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/mkotlyarov/todo-items-service/internal/config"
	"github.com/mkotlyarov/todo-items-service/internal/handler"
	"github.com/mkotlyarov/todo-items-service/internal/logger"
	"github.com/mkotlyarov/todo-items-service/internal/middleware"
	"github.com/mkotlyarov/todo-items-service/internal/repository"
	pgrepo "github.com/mkotlyarov/todo-items-service/internal/repository/postgres"
	"github.com/mkotlyarov/todo-items-service/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load application config
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	if cfg.Auth.Key == "" {
		// Deliberate fail-open for progressive rollout; see config.AuthConfig.
		appLogger.Warn().Msg("no API key configured: the access gate is FAIL-OPEN, every request will be admitted")
	}

	ctx := context.Background()
	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()

	if cfg.Postgres.Migrate {
		if err := runMigrations(cfg); err != nil {
			appLogger.Fatal().Err(err).Msg("migrations failed")
		}
		appLogger.Info().Str("dir", cfg.Postgres.MigrationsDir).Msg("migrations applied")
	}

	pool := repo.Pool()
	todoSvc := service.NewTodoService(pgrepo.NewTodoRepository(pool), appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.CORS))
	engine.Use(middleware.APIKeyAuth(cfg.Auth.Key, appLogger))
	handler.Register(engine, pgrepo.NewPinger(pool), todoSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-sigCtx.Done()
	appLogger.Info().Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("forced shutdown")
	}
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// runMigrations applies pending goose migrations over the stdlib pgx driver.
func runMigrations(cfg *config.Config) error {
	dsn := cfg.DSN()
	if env := os.Getenv("DATABASE_URL"); env != "" {
		dsn = env
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()
	return goose.Up(db, cfg.Postgres.MigrationsDir)
}
