package notifier

import (
	"fmt"
	"strings"

	"github.com/yourusername/court-edge/internal/models"
)

// Digest notices. Telegram Markdown, emoji prefixes distinguish outcome at a
// glance in the chat history.
const (
	noticeNoData      = "📭 No fixtures or usable odds found today."
	noticeNoValueBets = "🟡 No value bets detected today."
	digestHeader      = "🎯 *Value bets detected today*:\n"
)

// FormatDigest renders the flagged bets as one Telegram Markdown message.
// Bets are grouped per match so that a market where both sides show value
// (possible in expected-value mode) produces one match block with two lines.
func FormatDigest(bets []models.ValueBet) string {
	if len(bets) == 0 {
		return noticeNoValueBets
	}

	type matchBlock struct {
		header string
		lines  []string
	}

	var order []string
	blocks := make(map[string]*matchBlock)

	for _, bet := range bets {
		key := matchKey(bet)
		block, ok := blocks[key]
		if !ok {
			block = &matchBlock{
				header: fmt.Sprintf("\n🎾 *%s* vs *%s* (%s)\n",
					bet.Player, bet.Opponent, capitalize(string(bet.Surface))),
			}
			blocks[key] = block
			order = append(order, key)
		}
		block.lines = append(block.lines, fmt.Sprintf("🔹 *%s* @ %.2f (Value: %.1f%%)\n",
			bet.Player, bet.Price, bet.Edge*100))
	}

	var sb strings.Builder
	sb.WriteString(digestHeader)
	for _, key := range order {
		block := blocks[key]
		sb.WriteString(block.header)
		for _, line := range block.lines {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// matchKey identifies a match regardless of which side the bet is on
func matchKey(bet models.ValueBet) string {
	a, b := bet.Player, bet.Opponent
	if a > b {
		a, b = b, a
	}
	return a + "|" + b + "|" + string(bet.Surface)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
