package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
)

// RunLogger emits structured audit entries for batch runs and flagged bets
type RunLogger struct {
	log *logrus.Logger
}

// NewRunLogger creates a run logger
func NewRunLogger(log *logrus.Logger) *RunLogger {
	return &RunLogger{log: log}
}

// LogRunReport records the outcome of one batch run
func (r *RunLogger) LogRunReport(run string, report *models.RunReport) {
	fields := logrus.Fields{
		"component":    "pipeline",
		"run":          run,
		"fixtures_in":  report.FixturesIn,
		"quotes_in":    report.QuotesIn,
		"matched":      report.Matched,
		"bets_flagged": report.BetsFlagged,
		"results_in":   report.ResultsIn,
		"updated":      report.Updated,
		"skipped":      len(report.Skipped),
		"duration_ms":  report.Duration().Milliseconds(),
	}
	r.log.WithFields(fields).Info("Run completed")

	for _, skip := range report.Skipped {
		r.log.WithFields(logrus.Fields{
			"component": "pipeline",
			"run":       run,
			"reason":    string(skip.Reason),
			"detail":    skip.Detail,
		}).Debug("Record skipped")
	}
}

// LogValueBet records one flagged bet
func (r *RunLogger) LogValueBet(bet models.ValueBet) {
	r.log.WithFields(logrus.Fields{
		"component":    "detector",
		"bet_id":       bet.ID.String(),
		"player":       bet.Player,
		"opponent":     bet.Opponent,
		"surface":      bet.Surface.String(),
		"tournament":   bet.Tournament,
		"price":        bet.Price,
		"model_prob":   bet.ModelProb,
		"implied_prob": bet.ImpliedProb,
		"edge":         bet.Edge,
	}).Info("Value bet flagged")
}
