package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/vidinsight/vidinsight/pkg/validator"

	_ "github.com/vidinsight/vidinsight/docs"
	"github.com/vidinsight/vidinsight/internal/adapter/handler"
	"github.com/vidinsight/vidinsight/internal/adapter/repository"
	"github.com/vidinsight/vidinsight/internal/infrastructure/cache"
	"github.com/vidinsight/vidinsight/internal/infrastructure/database"
	"github.com/vidinsight/vidinsight/internal/infrastructure/external/ytdlp"
	"github.com/vidinsight/vidinsight/internal/infrastructure/storage"
	analysisuse "github.com/vidinsight/vidinsight/internal/usecase/analysis"
	"github.com/vidinsight/vidinsight/internal/usecase/aspects"
	"github.com/vidinsight/vidinsight/internal/usecase/sentiment"
	"github.com/vidinsight/vidinsight/internal/usecase/summary"
	"github.com/vidinsight/vidinsight/internal/usecase/topics"
	"github.com/vidinsight/vidinsight/internal/usecase/videos"
	"github.com/vidinsight/vidinsight/pkg/config"
	"github.com/vidinsight/vidinsight/pkg/nlp"
)

// @title           VidInsight API
// @version         1.0
// @description     YouTube comment analysis service: sentiment, topics, aspect insights and recommendations

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply sql-migrate migrations only when explicitly enabled in config.
	// Production deployments should run the migrate command instead.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("Automatic migrations are enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate instead.")
		}
		log.Println("🔄 Applying pending migrations (development only) ...")
		if err := database.MigrateUp(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use cmd/migrate for schema changes in CI/CD/production")
	}

	// Initialize cache store
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
	} else {
		log.Println("📦 Redis disabled; using in-memory cache store")
		store = cache.NewMemoryStore()
	}
	defer store.Close()

	// Initialize snapshot storage
	var snapshots analysisuse.SnapshotStore
	if cfg.Storage.Enabled {
		log.Println("🪣 Connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		snapshots = minioClient
	} else {
		log.Println("🪣 Object storage disabled; comment snapshots are skipped")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	// Initialize analysis components
	log.Println("🤖 Initializing analysis components...")
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ytClient := ytdlp.NewClient(&cfg.YTDLP, logger)

	var zeroShot sentiment.ZeroShotModel
	if cfg.HuggingFace.Enabled {
		zeroShot = nlp.NewHFClient(&cfg.HuggingFace)
		log.Printf("✅ Zero-shot sentiment via Hugging Face model %s", cfg.HuggingFace.Model)
	} else {
		log.Println("⚠️  Hugging Face disabled; sentiment uses the local VADER lexicon")
	}
	classifier := sentiment.NewClassifier(zeroShot, logger)
	tagger := aspects.NewTagger()
	clusterer := topics.NewLexicalClusterer(cfg.Pipeline.MinClusterSize, cfg.Pipeline.MaxTopics, logger)

	var summarizer analysisuse.SummaryGenerator
	if cfg.Ollama.Enabled {
		summarizer = summary.NewGenerator(nlp.NewOllamaClient(&cfg.Ollama), logger)
		log.Printf("✅ Summaries via Ollama model %s", cfg.Ollama.Model)
	} else {
		log.Println("⚠️  Ollama disabled; sentiment group summaries are skipped")
	}

	// Initialize services
	log.Println("✨ Initializing services...")
	analysisService := analysisuse.NewAnalysisService(
		videoRepo,
		commentRepo,
		analysisRepo,
		ytClient,
		classifier,
		tagger,
		clusterer,
		summarizer,
		store,
		snapshots,
		cfg,
		logger,
	)
	videoService := videos.NewVideoService(analysisRepo, commentRepo, ytClient, logger)

	// Initialize controllers
	log.Println("🚀 Initializing controllers...")
	analysisController := handler.NewAnalysisController(analysisService, logger)
	commentsController := handler.NewCommentsController(videoService, logger)
	videosController := handler.NewVideosController(videoService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, analysisController, commentsController, videosController)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
