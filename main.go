package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/username/clientledger/src/config"
	"github.com/username/clientledger/src/database"
	"github.com/username/clientledger/src/handlers"
	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/ledger/memory"
	"github.com/username/clientledger/src/ledger/sheets"
	"github.com/username/clientledger/src/ledger/sqlite"
	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/parsers"
	"github.com/username/clientledger/src/processors"
	"github.com/username/clientledger/src/services"
)

func newConnector(cfg *config.AppConfig) ledger.Connector {
	switch cfg.LedgerBackend {
	case config.BackendMemory:
		logger.L.Warn("Using in-memory ledger. Rows are lost on restart.")
		return memory.New()
	case config.BackendSQLite:
		logger.L.Info("Initializing ledger database...", "path", cfg.LedgerDatabasePath)
		database.InitDB(cfg.LedgerDatabasePath)
		logger.L.Info("Ledger database initialized successfully.")
		return sqlite.New(database.DB)
	default:
		if cfg.Spreadsheet == "" {
			logger.L.Error("SPREADSHEET must be set when LEDGER_BACKEND is sheets.")
			os.Exit(1)
		}
		return sheets.NewConnector(sheets.Config{
			Spreadsheet:     cfg.Spreadsheet,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
			TabCacheTTL:     cfg.TabCacheTTL,
		})
	}
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Client ledger intake server starting...", "backend", config.Cfg.LedgerBackend)

	logger.L.Info("Initializing services and handlers...")
	connector := newConnector(config.Cfg)
	submissionService := services.NewSubmissionService(
		parsers.NewFieldParser(),
		processors.NewRecordProcessor(),
		connector,
	)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, config.Cfg.MaxBodyBytes)

	logger.L.Info("Configuring routes...")
	rootMux := handlers.NewRouter(submissionHandler)

	logger.L.Info("Applying global middleware...")
	limiter := rate.NewLimiter(rate.Limit(config.Cfg.RateLimitPerSecond), config.Cfg.RateLimitBurst)
	finalHandler := handlers.RequestIDMiddleware(
		handlers.RecoverMiddleware(
			handlers.CORSMiddleware(config.Cfg.AllowedOrigins)(
				handlers.RateLimitMiddleware(limiter)(rootMux),
			),
		),
	)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  config.Cfg.ReadTimeout,
		WriteTimeout: config.Cfg.WriteTimeout,
		IdleTimeout:  config.Cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		logger.L.Info("Shutdown signal received, draining connections...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.L.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	}
	<-shutdownDone
	if database.DB != nil {
		database.DB.Close()
	}
	logger.L.Info("Server stopped gracefully.")
}
