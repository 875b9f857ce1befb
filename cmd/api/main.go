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

	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"

	_ "github.com/johnquangdev/meeting-minutes/docs"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-minutes/internal/app"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// @title           Meeting Minutes API
// @version         1.0
// @description     Turns meeting recordings into speaker-attributed transcripts and structured minutes

// @contact.name   API Support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Uploads can be large; keep the body limit in line with the pipeline limit
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Pipeline.MaxFileSizeMB+1)))

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")
	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Run migrations only when explicitly enabled in config.
	// Production deployments should run `minutes migrate up` from CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run `minutes migrate up`.")
		}
		log.Println("🔄 Applying sql-migrate migrations (development only) ...")
		if err := database.AutoMigrate(application.DB, cfg.Database.Migrations); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run `minutes migrate up` in CI/CD/production")
	}

	if err := os.MkdirAll(cfg.Pipeline.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	if err := application.Prober.Available(); err != nil {
		log.Printf("⚠️  %v; the alternating-speaker fallback is disabled", err)
	}

	// Initialize meeting handler
	log.Println("🎙️ Initializing meeting handler...")
	meetingHandler := handler.NewMeetingHandler(application.Meetings, handler.UploadOptions{
		Dir:              cfg.Pipeline.UploadDir,
		SupportedFormats: cfg.Pipeline.SupportedFormats,
		MaxFileSizeMB:    cfg.Pipeline.MaxFileSizeMB,
	}, logger)
	log.Println("✅ Meeting handler initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")

	var authEchoMW echo.MiddlewareFunc
	if cfg.JWT.Enabled {
		log.Println("🔑 JWT auth enabled")
		authEchoMW = httpmw.EchoAuth(application.Tokens)
	} else {
		log.Println("⚠️  AUTH_ENABLED=false, the API is open to anyone who can reach it")
	}

	router := handler.NewRouter(cfg, meetingHandler, authEchoMW)
	router.Setup(e)

	// Audio retention
	stopCleanup := make(chan struct{})
	go runAudioCleanup(application.Meetings, cfg.Pipeline.AudioRetentionDays, logger, stopCleanup)

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
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// runAudioCleanup drops expired audio once at startup and then hourly
func runAudioCleanup(svc meeting.Service, retentionDays int, logger *zap.Logger, stop <-chan struct{}) {
	if retentionDays <= 0 {
		logger.Info("♻️ Audio retention disabled")
		return
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		if _, err := svc.CleanupExpiredAudio(context.Background(), retentionDays); err != nil {
			logger.Warn("⚠️ Audio cleanup failed", zap.Error(err))
		}

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
