// Package main provides a one-shot CLI for the daily detection run.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/court-edge/internal/config"
	"github.com/yourusername/court-edge/internal/database"
	"github.com/yourusername/court-edge/internal/datasource"
	"github.com/yourusername/court-edge/internal/detector"
	"github.com/yourusername/court-edge/internal/linkage"
	"github.com/yourusername/court-edge/internal/logger"
	"github.com/yourusername/court-edge/internal/models"
	"github.com/yourusername/court-edge/internal/notifier"
	"github.com/yourusername/court-edge/internal/repository"
	"github.com/yourusername/court-edge/internal/service"
)

var (
	configFile string
	dryRun     bool
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Detect value bets without persisting or notifying")
}

var rootCmd = &cobra.Command{
	Use:   "daily-run",
	Short: "Run one value-bet detection pass over today's fixtures",
	Long:  `Fetches today's fixtures and odds, links them, flags value bets against the rating table, logs them and sends the Telegram digest.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetection(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runDetection(ctx context.Context) error {
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.Sources.TennisAPI.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.Sources.TennisAPI.MaxRetries
	httpCfg.RateLimit = cfg.Sources.TennisAPI.RateLimit
	tennisClient := datasource.NewTennisAPIClient(
		datasource.NewRateLimitedHTTPClient(httpCfg, appLog),
		cfg.Sources.TennisAPI.BaseURL, cfg.Sources.TennisAPI.APIKey, appLog,
	)

	oddsCfg := datasource.DefaultHTTPClientConfig()
	oddsCfg.Timeout = time.Duration(cfg.Sources.OddsAPI.TimeoutSeconds) * time.Second
	oddsCfg.MaxRetries = cfg.Sources.OddsAPI.MaxRetries
	oddsCfg.RateLimit = cfg.Sources.OddsAPI.RateLimit
	oddsClient := datasource.NewOddsAPIClient(
		datasource.NewRateLimitedHTTPClient(oddsCfg, appLog),
		cfg.Sources.OddsAPI.BaseURL, cfg.Sources.OddsAPI.APIKey, appLog,
	)

	normalizer := linkage.NewNormalizer(linkage.Mode(cfg.Linkage.NameMode))
	linker := linkage.NewLinker(normalizer, cfg.Linkage.SimilarityThreshold, appLog)
	det := detector.New(cfg.Detection.EdgeThreshold, detector.EdgeMode(cfg.Detection.EdgeMode), appLog)

	var notify notifier.Notifier = notifier.NopNotifier{}
	var betLog repository.BetLogRepository = repository.NewPostgresBetLogRepository(db)
	if dryRun {
		appLog.Info("Dry run: bets will not be persisted or announced")
		betLog = nopBetLog{}
	} else if cfg.Telegram.Enabled {
		notify = notifier.NewTelegramNotifier(
			cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			time.Duration(cfg.Telegram.CooldownMinutes)*time.Minute, appLog,
		)
	}

	svc := service.NewDetectionService(
		tennisClient, oddsClient, linker, det,
		repository.NewPostgresRatingRepository(db), betLog, notify, appLog,
	)

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(report.String())
	return nil
}

// nopBetLog swallows writes during a dry run
type nopBetLog struct{}

func (nopBetLog) InsertBatch(ctx context.Context, bets []models.ValueBet) error { return nil }
func (nopBetLog) GetOpen(ctx context.Context) ([]models.ValueBet, error)        { return nil, nil }
func (nopBetLog) MarkOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error {
	return nil
}
