// Package notifier delivers the daily digest of flagged value bets over
// Telegram.
package notifier

import (
	"context"

	"github.com/yourusername/court-edge/internal/models"
)

// Notifier is the outbound notification channel for a pipeline run
type Notifier interface {
	// NotifyValueBets sends the digest of flagged bets for today's run
	NotifyValueBets(ctx context.Context, bets []models.ValueBet) error

	// NotifyNoData reports that fixtures or odds were unavailable
	NotifyNoData(ctx context.Context) error

	// NotifyNoValueBets reports a completed run that flagged nothing
	NotifyNoValueBets(ctx context.Context) error
}

// NopNotifier discards all notifications. Used when the Telegram channel is
// disabled in configuration.
type NopNotifier struct{}

func (NopNotifier) NotifyValueBets(ctx context.Context, bets []models.ValueBet) error { return nil }
func (NopNotifier) NotifyNoData(ctx context.Context) error                            { return nil }
func (NopNotifier) NotifyNoValueBets(ctx context.Context) error                       { return nil }
