package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends run digests to a Telegram chat via the Bot API.
// Repeated digests for the same bets within the cooldown window are
// suppressed so a rerun after a partial failure does not spam the chat.
type TelegramNotifier struct {
	client   *retryablehttp.Client
	baseURL  string
	botToken string
	chatID   string
	logger   *logrus.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time
	cooldown time.Duration
}

// TelegramOption customizes the notifier, used by tests to point at a stub server
type TelegramOption func(*TelegramNotifier)

// WithBaseURL overrides the Telegram API base URL
func WithBaseURL(baseURL string) TelegramOption {
	return func(n *TelegramNotifier) {
		n.baseURL = baseURL
	}
}

// NewTelegramNotifier creates a Telegram notifier
func NewTelegramNotifier(botToken, chatID string, cooldown time.Duration, logger *logrus.Logger, opts ...TelegramOption) *TelegramNotifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil

	n := &TelegramNotifier{
		client:   client,
		baseURL:  telegramAPIBase,
		botToken: botToken,
		chatID:   chatID,
		logger:   logger,
		lastSent: make(map[string]time.Time),
		cooldown: cooldown,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyValueBets sends the digest of flagged bets for today's run
func (n *TelegramNotifier) NotifyValueBets(ctx context.Context, bets []models.ValueBet) error {
	if len(bets) == 0 {
		return n.NotifyNoValueBets(ctx)
	}

	fresh := n.filterCooldown(bets)
	if len(fresh) == 0 {
		n.logger.Debug("All flagged bets within cooldown, digest suppressed")
		return nil
	}

	return n.sendMessage(ctx, FormatDigest(fresh))
}

// NotifyNoData reports that fixtures or odds were unavailable
func (n *TelegramNotifier) NotifyNoData(ctx context.Context) error {
	return n.sendMessage(ctx, noticeNoData)
}

// NotifyNoValueBets reports a completed run that flagged nothing
func (n *TelegramNotifier) NotifyNoValueBets(ctx context.Context) error {
	return n.sendMessage(ctx, noticeNoValueBets)
}

// filterCooldown drops bets whose market was already announced within the
// cooldown window and records the ones that pass
func (n *TelegramNotifier) filterCooldown(bets []models.ValueBet) []models.ValueBet {
	if n.cooldown <= 0 {
		return bets
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	now := time.Now()
	fresh := make([]models.ValueBet, 0, len(bets))
	for _, bet := range bets {
		key := fmt.Sprintf("%s|%s|%s", bet.PlayerKey, bet.Opponent, bet.Surface)
		if last, ok := n.lastSent[key]; ok && now.Sub(last) < n.cooldown {
			continue
		}
		n.lastSent[key] = now
		fresh = append(fresh, bet)
	}

	// Drop stale entries so the map does not grow across days
	cutoff := now.Add(-2 * n.cooldown)
	for key, t := range n.lastSent {
		if t.Before(cutoff) {
			delete(n.lastSent, key)
		}
	}

	return fresh
}

// sendMessage posts one Markdown message to the configured chat
func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    n.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(body))
	}

	n.logger.WithField("chars", len(text)).Debug("Telegram message sent")
	return nil
}
