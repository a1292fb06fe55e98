// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/container"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/database"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/DecorForge/proposalcraft-go/internal/infrastructure/persistence/database"
	"github.com/DecorForge/proposalcraft-go/internal/presentation/http/server"
	"github.com/DecorForge/proposalcraft-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("\033[32m" + `
  ProposalCraft
` + "\033[97m" + `
  proposal editor for interior design studios
` + "\033[0m")

	// Step 1: Structured logging
	log.Println("Initializing channeled logging...")
	logger, err := logging.NewChanneledLogger(container.NewLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Database connection
	logger.Startup().Info("Connecting to database", "driver", config.DBDriver)
	db, err := openDatabase(logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Step 3: Schema and seed content
	logger.Startup().Info("Ensuring database schema...")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tableCreator.SeedInitialContent(db.DB); err != nil {
		return fmt.Errorf("failed to seed initial content: %w", err)
	}
	logger.Startup().Info("Database schema ready")

	// Step 4: Dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, logger)
	logger.Startup().Info("Container initialization complete")

	// Step 5: HTTP server
	logger.Startup().Info("Starting HTTP server...")
	startServerTime := time.Now()

	httpServer := server.New(config.Port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", config.Port, "duration", time.Since(startServerTime))

	// Step 6: Graceful shutdown wiring
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	} else {
		logger.Shutdown().Info("Database connection closed")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

func openDatabase(logger *logging.ChanneledLogger) (*persistence.DB, error) {
	switch config.DBDriver {
	case "libsql":
		if config.TursoDatabaseURL == "" {
			return nil, fmt.Errorf("TURSO_DATABASE_URL is required for the libsql driver")
		}
		conn := persistence.TursoConnString(config.TursoDatabaseURL, config.TursoAuthToken)
		return persistence.NewConnectionWithLogger("libsql", conn, logger)
	default:
		return persistence.NewConnectionWithLogger("sqlite3", config.DBPath, logger)
	}
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
