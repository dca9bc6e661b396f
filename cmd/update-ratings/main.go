// Package main provides a one-shot CLI for the nightly rating settlement run.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/court-edge/internal/config"
	"github.com/yourusername/court-edge/internal/database"
	"github.com/yourusername/court-edge/internal/datasource"
	"github.com/yourusername/court-edge/internal/linkage"
	"github.com/yourusername/court-edge/internal/logger"
	"github.com/yourusername/court-edge/internal/rating"
	"github.com/yourusername/court-edge/internal/repository"
	"github.com/yourusername/court-edge/internal/service"
)

var (
	configFile string
	dateFlag   string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&dateFlag, "date", "", "Settle matches for this date (YYYY-MM-DD, default yesterday)")
}

var rootCmd = &cobra.Command{
	Use:   "update-ratings",
	Short: "Fold completed match results into the rating table",
	Long:  `Fetches completed singles matches, applies tier-weighted rating updates for each result, persists the revised rating table and settles open bet-log entries.`,
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
		return runSettlement(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSettlement(ctx context.Context) error {
	day := time.Now().UTC().AddDate(0, 0, -1)
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
		}
		day = parsed
	}

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

	normalizer := linkage.NewNormalizer(linkage.Mode(cfg.Linkage.NameMode))
	svc := service.NewSettlementService(
		tennisClient,
		rating.NewUpdater(normalizer, appLog),
		normalizer,
		repository.NewPostgresRatingRepository(db),
		repository.NewPostgresBetLogRepository(db),
		appLog,
	)

	report, err := svc.RunFor(ctx, day)
	if err != nil {
		return err
	}

	fmt.Println(report.String())
	return nil
}
