package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/datasource"
	"github.com/yourusername/court-edge/internal/logger"
	"github.com/yourusername/court-edge/internal/metrics"
	"github.com/yourusername/court-edge/internal/models"
	"github.com/yourusername/court-edge/internal/rating"
	"github.com/yourusername/court-edge/internal/repository"
)

// SettlementService runs the nightly settlement pipeline: fetch yesterday's
// results, fold them into the rating table, and settle any open entries in
// the bet log.
type SettlementService struct {
	results    datasource.ResultSource
	updater    *rating.Updater
	resolver   rating.NameResolver
	ratingRepo repository.RatingRepository
	betLog     repository.BetLogRepository
	runLogger  *logger.RunLogger
	log        *logrus.Logger
	now        func() time.Time
}

// NewSettlementService creates the settlement pipeline
func NewSettlementService(
	results datasource.ResultSource,
	updater *rating.Updater,
	resolver rating.NameResolver,
	ratingRepo repository.RatingRepository,
	betLog repository.BetLogRepository,
	log *logrus.Logger,
) *SettlementService {
	return &SettlementService{
		results:    results,
		updater:    updater,
		resolver:   resolver,
		ratingRepo: ratingRepo,
		betLog:     betLog,
		runLogger:  logger.NewRunLogger(log),
		log:        log,
		now:        time.Now,
	}
}

// Run executes one settlement pass over yesterday's completed matches
func (s *SettlementService) Run(ctx context.Context) (*models.RunReport, error) {
	return s.RunFor(ctx, s.now().UTC().AddDate(0, 0, -1))
}

// RunFor executes one settlement pass over the given day's completed matches.
// Results are applied sequentially in arrival order; a result that cannot be
// applied is recorded in the report and the batch continues.
func (s *SettlementService) RunFor(ctx context.Context, day time.Time) (*models.RunReport, error) {
	report := &models.RunReport{StartedAt: s.now()}
	defer func() {
		report.FinishedAt = s.now()
		metrics.ObserveRunDuration("settlement", report.Duration().Seconds())
		s.runLogger.LogRunReport("settlement", report)
	}()

	entries, err := s.ratingRepo.LoadAll(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load ratings: %w", err)
	}
	store := rating.NewMemoryStoreFromEntries(entries)

	results, err := s.results.FetchResults(ctx, day)
	if err != nil {
		return report, fmt.Errorf("failed to fetch results: %w", err)
	}
	report.ResultsIn = len(results)

	for _, result := range results {
		if err := s.updater.Apply(result, store); err != nil {
			reason := classifySkip(err)
			report.Skip(reason, "%s vs %s: %v", result.Player1, result.Player2, err)
			metrics.RecordSkippedResult(string(reason))
			continue
		}
		report.Updated++
		metrics.RecordRatingUpdate()
	}

	if report.Updated > 0 {
		if err := s.ratingRepo.SaveAll(ctx, store.Entries()); err != nil {
			return report, fmt.Errorf("failed to persist ratings: %w", err)
		}
	}
	metrics.UpdateRatingsTracked(store.Len())

	if err := s.settleOpenBets(ctx, results); err != nil {
		return report, err
	}

	return report, nil
}

// settleOpenBets marks open bet-log entries won or lost based on the day's
// results. Bets whose match did not finish yesterday stay open.
func (s *SettlementService) settleOpenBets(ctx context.Context, results []models.MatchResult) error {
	open, err := s.betLog.GetOpen(ctx)
	if err != nil {
		return fmt.Errorf("failed to load open bets: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	type outcome struct {
		winner models.PlayerKey
	}
	finished := make(map[string]outcome)
	for _, result := range results {
		key1 := s.resolver.Normalize(result.Player1)
		key2 := s.resolver.Normalize(result.Player2)
		winner := s.resolver.Normalize(result.Winner)
		if key1.IsEmpty() || key2.IsEmpty() || winner.IsEmpty() {
			continue
		}
		finished[pairKey(key1, key2)] = outcome{winner: winner}
		finished[pairKey(key2, key1)] = outcome{winner: winner}
	}

	for _, bet := range open {
		opponentKey := s.resolver.Normalize(bet.Opponent)
		result, ok := finished[pairKey(bet.PlayerKey, opponentKey)]
		if !ok {
			continue
		}
		betOutcome := models.BetOutcomeLost
		if result.winner == bet.PlayerKey {
			betOutcome = models.BetOutcomeWon
		}
		if err := s.betLog.MarkOutcome(ctx, bet.ID, betOutcome); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"bet_id": bet.ID.String(),
				"player": bet.Player,
			}).Warn("Failed to settle bet")
			continue
		}
	}

	return nil
}

func pairKey(a, b models.PlayerKey) string {
	return string(a) + "|" + string(b)
}

// classifySkip maps an updater error onto a skip reason
func classifySkip(err error) models.SkipReason {
	switch {
	case errors.Is(err, models.ErrUnrecognizedSurface):
		return models.SkipReasonUnrecognizedSurface
	case errors.Is(err, models.ErrUnresolvedPlayer):
		return models.SkipReasonUnresolvedPlayer
	default:
		return models.SkipReasonUnresolvedPlayer
	}
}
