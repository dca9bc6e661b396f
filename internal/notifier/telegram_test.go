package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-edge/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func sampleBet(player, opponent string, edge float64) models.ValueBet {
	return models.ValueBet{
		ID:        uuid.New(),
		Player:    player,
		PlayerKey: models.PlayerKey(player),
		Opponent:  opponent,
		Surface:   models.SurfaceHard,
		Price:     1.80,
		ModelProb: 0.76,
		Edge:      edge,
		FoundAt:   time.Now(),
	}
}

func TestFormatDigestSingleBet(t *testing.T) {
	digest := FormatDigest([]models.ValueBet{
		sampleBet("j. sinner", "c. alcaraz", 0.21),
	})

	assert.Contains(t, digest, "🎯 *Value bets detected today*:")
	assert.Contains(t, digest, "🎾 *j. sinner* vs *c. alcaraz* (Hard)")
	assert.Contains(t, digest, "🔹 *j. sinner* @ 1.80 (Value: 21.0%)")
}

func TestFormatDigestGroupsBothSides(t *testing.T) {
	digest := FormatDigest([]models.ValueBet{
		sampleBet("a. rublev", "d. medvedev", 0.08),
		sampleBet("d. medvedev", "a. rublev", 0.06),
	})

	// One match header, two value lines
	assert.Equal(t, 1, strings.Count(digest, "🎾"), digest)
	assert.Equal(t, 2, strings.Count(digest, "🔹"), digest)
}

func TestFormatDigestEmpty(t *testing.T) {
	assert.Equal(t, noticeNoValueBets, FormatDigest(nil))
}

func TestTelegramNotifierSendsDigest(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345", 0, quietLogger(), WithBaseURL(server.URL))
	err := n.NotifyValueBets(context.Background(), []models.ValueBet{
		sampleBet("j. sinner", "c. alcaraz", 0.21),
	})
	require.NoError(t, err)

	assert.Equal(t, "12345", received["chat_id"])
	assert.Equal(t, "Markdown", received["parse_mode"])
	assert.Contains(t, received["text"], "j. sinner")
}

func TestTelegramNotifierCooldownSuppressesRepeat(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345", time.Hour, quietLogger(), WithBaseURL(server.URL))
	bet := sampleBet("j. sinner", "c. alcaraz", 0.21)

	require.NoError(t, n.NotifyValueBets(context.Background(), []models.ValueBet{bet}))
	require.NoError(t, n.NotifyValueBets(context.Background(), []models.ValueBet{bet}))

	assert.Equal(t, 1, calls, "repeat digest within cooldown must be suppressed")
}

func TestTelegramNotifierNoDataNotice(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345", 0, quietLogger(), WithBaseURL(server.URL))
	require.NoError(t, n.NotifyNoData(context.Background()))
	assert.Equal(t, noticeNoData, received["text"])
}

func TestTelegramNotifierAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345", 0, quietLogger(), WithBaseURL(server.URL))
	err := n.NotifyNoValueBets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
