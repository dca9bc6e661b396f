// Package main provides the entry point for the long-running value betting bot.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/config"
	"github.com/yourusername/court-edge/internal/database"
	"github.com/yourusername/court-edge/internal/datasource"
	"github.com/yourusername/court-edge/internal/detector"
	"github.com/yourusername/court-edge/internal/health"
	"github.com/yourusername/court-edge/internal/linkage"
	"github.com/yourusername/court-edge/internal/logger"
	"github.com/yourusername/court-edge/internal/metrics"
	"github.com/yourusername/court-edge/internal/notifier"
	"github.com/yourusername/court-edge/internal/rating"
	"github.com/yourusername/court-edge/internal/repository"
	"github.com/yourusername/court-edge/internal/scheduler"
	"github.com/yourusername/court-edge/internal/service"
)

func main() {
	// Local development convenience, ignored when the file is absent
	_ = godotenv.Load()

	cfg, err := config.LoadWithDefaults("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Court Edge bot starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	detectionSvc, settlementSvc := buildServices(cfg, db, appLog)

	sched := scheduler.New(appLog)
	if err := sched.Schedule("detection", cfg.Schedule.DetectionCron, detectionSvc); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule detection run")
	}
	if err := sched.Schedule("settlement", cfg.Schedule.SettlementCron, settlementSvc); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule settlement run")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	var healthServer *health.Server
	if cfg.Health.Enabled {
		healthServer = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Port:        strconv.Itoa(cfg.Health.Port),
			Logger:      appLog,
			DB:          db,
			Scheduler:   sched,
		})
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to start health server")
		}
		healthServer.SetReady(true)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	appLog.WithFields(logrus.Fields{
		"detection_cron":  cfg.Schedule.DetectionCron,
		"settlement_cron": cfg.Schedule.SettlementCron,
		"next_run":        sched.NextRun().Format(time.RFC3339),
	}).Info("Bot is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error during metrics server shutdown")
		}
	}

	appLog.Info("Court Edge bot shut down successfully")
}

// buildServices wires the two pipelines from configuration
func buildServices(cfg *config.Config, db *database.DB, appLog *logrus.Logger) (*service.DetectionService, *service.SettlementService) {
	repos := repository.Repositories{
		Rating: repository.NewPostgresRatingRepository(db),
		BetLog: repository.NewPostgresBetLogRepository(db),
	}

	tennisClient := datasource.NewTennisAPIClient(
		datasource.NewRateLimitedHTTPClient(httpClientConfig(cfg.Sources.TennisAPI), appLog),
		cfg.Sources.TennisAPI.BaseURL,
		cfg.Sources.TennisAPI.APIKey,
		appLog,
	)
	oddsClient := datasource.NewOddsAPIClient(
		datasource.NewRateLimitedHTTPClient(httpClientConfig(cfg.Sources.OddsAPI), appLog),
		cfg.Sources.OddsAPI.BaseURL,
		cfg.Sources.OddsAPI.APIKey,
		appLog,
	)
	cachedOdds := datasource.NewCachedOddsSource(
		oddsClient,
		time.Duration(cfg.Sources.QuoteCacheTTLSeconds)*time.Second,
	)

	normalizer := linkage.NewNormalizer(linkage.Mode(cfg.Linkage.NameMode))
	linker := linkage.NewLinker(normalizer, cfg.Linkage.SimilarityThreshold, appLog)
	det := detector.New(cfg.Detection.EdgeThreshold, detector.EdgeMode(cfg.Detection.EdgeMode), appLog)

	var notify notifier.Notifier = notifier.NopNotifier{}
	if cfg.Telegram.Enabled {
		notify = notifier.NewTelegramNotifier(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			time.Duration(cfg.Telegram.CooldownMinutes)*time.Minute,
			appLog,
		)
	}

	detectionSvc := service.NewDetectionService(
		tennisClient, cachedOdds, linker, det, repos.Rating, repos.BetLog, notify, appLog,
	)
	settlementSvc := service.NewSettlementService(
		tennisClient, rating.NewUpdater(normalizer, appLog), normalizer, repos.Rating, repos.BetLog, appLog,
	)

	return detectionSvc, settlementSvc
}

func httpClientConfig(provider config.APIProviderConfig) datasource.HTTPClientConfig {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(provider.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = provider.MaxRetries
	httpCfg.RateLimit = provider.RateLimit
	return httpCfg
}
