// Package service orchestrates the two pipeline runs: morning value-bet
// detection and nightly rating settlement.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/datasource"
	"github.com/yourusername/court-edge/internal/detector"
	"github.com/yourusername/court-edge/internal/linkage"
	"github.com/yourusername/court-edge/internal/logger"
	"github.com/yourusername/court-edge/internal/metrics"
	"github.com/yourusername/court-edge/internal/models"
	"github.com/yourusername/court-edge/internal/notifier"
	"github.com/yourusername/court-edge/internal/rating"
	"github.com/yourusername/court-edge/internal/repository"
)

// DetectionService runs the daily detection pipeline: fetch today's fixtures
// and odds, link them, compare model probabilities against de-margined
// implied probabilities, persist and announce the flagged bets.
type DetectionService struct {
	fixtures   datasource.FixtureSource
	odds       datasource.OddsSource
	linker     *linkage.Linker
	detector   *detector.Detector
	ratingRepo repository.RatingRepository
	betLog     repository.BetLogRepository
	notify     notifier.Notifier
	runLogger  *logger.RunLogger
	log        *logrus.Logger
	now        func() time.Time
}

// NewDetectionService creates the detection pipeline
func NewDetectionService(
	fixtures datasource.FixtureSource,
	odds datasource.OddsSource,
	linker *linkage.Linker,
	det *detector.Detector,
	ratingRepo repository.RatingRepository,
	betLog repository.BetLogRepository,
	notify notifier.Notifier,
	log *logrus.Logger,
) *DetectionService {
	return &DetectionService{
		fixtures:   fixtures,
		odds:       odds,
		linker:     linker,
		detector:   det,
		ratingRepo: ratingRepo,
		betLog:     betLog,
		notify:     notify,
		runLogger:  logger.NewRunLogger(log),
		log:        log,
		now:        time.Now,
	}
}

// Run executes one detection pass for today. Upstream outages and empty days
// both end the run with a "no data" notice rather than an alert storm;
// per-record failures are collected in the report and never abort the run.
func (s *DetectionService) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{StartedAt: s.now()}
	defer func() {
		report.FinishedAt = s.now()
		metrics.ObserveRunDuration("detection", report.Duration().Seconds())
		s.runLogger.LogRunReport("detection", report)
	}()

	entries, err := s.ratingRepo.LoadAll(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load ratings: %w", err)
	}
	store := rating.NewMemoryStoreFromEntries(entries)
	metrics.UpdateRatingsTracked(store.Len())

	today := s.now().UTC()
	fixtures, err := s.fixtures.FetchFixtures(ctx, today)
	if err != nil {
		s.log.WithError(err).Warn("Fixture fetch failed, treating as no data")
		return report, s.notify.NotifyNoData(ctx)
	}
	quotes, err := s.odds.FetchOdds(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Odds fetch failed, treating as no data")
		return report, s.notify.NotifyNoData(ctx)
	}

	report.FixturesIn = len(fixtures)
	report.QuotesIn = len(quotes)
	if len(fixtures) == 0 || len(quotes) == 0 {
		return report, s.notify.NotifyNoData(ctx)
	}

	matched, unmatched := s.linker.Link(fixtures, quotes)
	report.Matched = len(matched)
	for _, fixture := range unmatched {
		report.Skip(models.SkipReasonUnresolvedLink, "%s vs %s (%s)",
			fixture.Player1, fixture.Player2, fixture.Tournament)
	}
	metrics.RecordUnmatchedFixtures(len(unmatched))
	metrics.UpdateLastRunMatched(len(matched))

	if len(matched) == 0 {
		return report, s.notify.NotifyNoData(ctx)
	}

	bets, skipped := s.detector.Detect(matched, store)
	for _, skip := range skipped {
		report.Skipped = append(report.Skipped, skip)
		metrics.RecordRejectedQuote()
	}
	report.BetsFlagged = len(bets)
	metrics.RecordValueBets(len(bets))

	for _, bet := range bets {
		s.runLogger.LogValueBet(bet)
	}

	if err := s.betLog.InsertBatch(ctx, bets); err != nil {
		return report, fmt.Errorf("failed to persist bet log: %w", err)
	}

	if err := s.notify.NotifyValueBets(ctx, bets); err != nil {
		return report, fmt.Errorf("failed to send digest: %w", err)
	}
	metrics.RecordNotificationSent()

	return report, nil
}
