package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"financas/internal/amqp"
	"financas/internal/auth"
	"financas/internal/config"
	apphttp "financas/internal/http"
	"financas/internal/log"
	ports "financas/internal/rows"
	gsheet "financas/internal/rows/google"
	mem "financas/internal/rows/memory"
	"financas/internal/services"
	"financas/internal/storage"
)

func main() {
	// .env is optional, real deployments use the environment directly
	_ = godotenv.Load()

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		logCfg.Format = format
	}
	logger := log.Setup(logCfg)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var source ports.Source
	switch cfg.DataBackend {
	case "sheets":
		provider, err := buildAuthProvider(cfg)
		if err != nil {
			logger.Error("Failed to initialize Google credentials", "error", err)
			os.Exit(1)
		}
		cli, err := gsheet.New(ctx, provider, cfg.GoogleSpreadsheetID, cfg.GoogleReadRange)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		source = cli
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		source = mem.NewFromFile(cfg.SeedCSVPath)
		logger.Info("Initialized memory backend", "seed", cfg.SeedCSVPath)
	}

	var alerts services.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpLog := log.WithComponent(logger, "amqp")
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			amqpLog.Error("Failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		alerts = client
		amqpLog.Info("Overdue alerting enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	storageLog := log.WithComponent(logger, "storage")
	prefs, err := storage.NewPreferenceStore(cfg.SQLiteDBPath)
	if err != nil {
		storageLog.Error("Failed to open preference store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer prefs.Close()
	storageLog.Info("Preference store ready", "path", cfg.SQLiteDBPath)

	svc := services.NewDashboardService(source, cfg.AliasTable(), alerts)
	if err := svc.Refresh(ctx); err != nil {
		// Startup continues with an empty collection, the error surfaces in
		// the first dashboard view.
		logger.Warn("Initial dataset load failed", "error", err)
	}

	if cfg.RefreshInterval > 0 {
		go refreshLoop(ctx, svc, cfg.RefreshInterval)
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, prefs)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting financas server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.Start(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func buildAuthProvider(cfg *config.Config) (auth.Provider, error) {
	if cfg.GoogleStaticAccessToken != "" {
		return auth.NewStaticProvider(cfg.GoogleStaticAccessToken), nil
	}
	return auth.NewServiceAccountProvider(cfg.GoogleCredentialsJSON, cfg.GoogleCredentialsFile)
}

func refreshLoop(ctx context.Context, svc *services.DashboardService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Refresh(ctx); err != nil {
				slog.WarnContext(ctx, "Scheduled refresh failed", "error", err)
			}
		}
	}
}
