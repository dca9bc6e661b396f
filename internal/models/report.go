package models

import (
	"fmt"
	"time"
)

// SkipReason classifies why a single record was dropped from a run. Per-record
// failures never abort a batch; they are collected here so the caller (and the
// tests) can assert on the count and kind of skipped records.
type SkipReason string

const (
	SkipReasonInvalidOdds         SkipReason = "invalid_odds"
	SkipReasonUnresolvedLink      SkipReason = "unresolved_link"
	SkipReasonUnresolvedPlayer    SkipReason = "unresolved_player"
	SkipReasonUnrecognizedSurface SkipReason = "unrecognized_surface"
)

// SkippedRecord pairs a dropped record's identity with the reason it was dropped
type SkippedRecord struct {
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail"`
}

// RunReport summarizes one batch run: how many records came in, how many made
// it through each stage, and exactly which ones were skipped and why.
type RunReport struct {
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
	FixturesIn   int             `json:"fixtures_in"`
	QuotesIn     int             `json:"quotes_in"`
	Matched      int             `json:"matched"`
	BetsFlagged  int             `json:"bets_flagged"`
	ResultsIn    int             `json:"results_in"`
	Updated      int             `json:"updated"`
	Skipped      []SkippedRecord `json:"skipped,omitempty"`
}

// Skip records a dropped record
func (r *RunReport) Skip(reason SkipReason, format string, args ...interface{}) {
	r.Skipped = append(r.Skipped, SkippedRecord{
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	})
}

// SkipCount returns the number of records skipped for the given reason
func (r *RunReport) SkipCount(reason SkipReason) int {
	count := 0
	for _, s := range r.Skipped {
		if s.Reason == reason {
			count++
		}
	}
	return count
}

// Duration returns the wall-clock duration of the run
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// String returns a one-line summary suitable for logging
func (r *RunReport) String() string {
	return fmt.Sprintf(
		"fixtures=%d quotes=%d matched=%d bets=%d results=%d updated=%d skipped=%d duration=%s",
		r.FixturesIn, r.QuotesIn, r.Matched, r.BetsFlagged, r.ResultsIn, r.Updated,
		len(r.Skipped), r.Duration().Round(time.Millisecond),
	)
}
