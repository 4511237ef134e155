// Package admin implements the daemon-side CLI commands.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/cartograph-ai/cartograph/internal/api/handlers"
	"github.com/cartograph-ai/cartograph/internal/config"
	"github.com/cartograph-ai/cartograph/internal/links"
	"github.com/cartograph-ai/cartograph/internal/openai"
	"github.com/cartograph-ai/cartograph/internal/repository"
	"github.com/cartograph-ai/cartograph/internal/server"
	"github.com/cartograph-ai/cartograph/internal/service"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the cartograph API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("CARTOGRAPH_OPENAI_API_KEY is required")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("connected to database")

	// Run migrations unless --no-migrate flag is set
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	aiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:          cfg.OpenAIAPIKey,
		CompletionModel: cfg.CompletionModel,
	})

	chunkRepo := repository.NewChunkRepository(pool, aiClient)

	ingestSvc := service.NewIngestServiceWithConfig(chunkRepo, &service.DefaultUUIDGenerator{}, service.IngestConfig{
		ReadyTimeout: cfg.IndexReadyTimeout,
		ReadyPoll:    cfg.IndexReadyPoll,
	})
	retrievalSvc := service.NewRetrievalService(chunkRepo)

	var videoSearcher service.VideoSearcher
	if cfg.HasYouTube() {
		yt, err := links.NewYouTubeClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			log.Printf("youtube client init failed (continuing without video links): %v", err)
		} else {
			videoSearcher = yt
		}
	}

	var webSearcher service.WebSearcher
	if cfg.HasBrave() {
		webSearcher = links.NewBraveClient(cfg.BraveAPIKey)
	}

	chunkCfg := service.ChunkConfig{MaxChars: cfg.ChunkSize, BatchSize: cfg.BatchSize}

	graphSvc := service.NewGraphServiceWithConfig(ingestSvc, retrievalSvc, aiClient, chunkCfg)
	titleSvc := service.NewTitleService(retrievalSvc, aiClient)
	chatSvc := service.NewChatService(retrievalSvc, aiClient)
	conceptSvc := service.NewConceptService(retrievalSvc, aiClient, videoSearcher, webSearcher)
	pathSvc := service.NewStudyPathService(retrievalSvc, aiClient, videoSearcher, webSearcher)

	router := server.NewRouter(server.RouterConfig{
		GraphHandler:    handlers.NewGraphHandler(graphSvc),
		DocumentHandler: handlers.NewDocumentHandler(titleSvc, chatSvc, conceptSvc, pathSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	// Create a sql.DB connection for golang-migrate
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
