package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
)

const oddsAPISourceName = "the_odds_api"

// OddsAPIClient implements OddsSource against the-odds-api.com v4
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// oddsAPIEvent represents one event from the h2h odds feed
type oddsAPIEvent struct {
	ID         string             `json:"id"`
	SportKey   string             `json:"sport_key"`
	HomeTeam   string             `json:"home_team"`
	AwayTeam   string             `json:"away_team"`
	Bookmakers []oddsAPIBookmaker `json:"bookmakers"`
}

type oddsAPIBookmaker struct {
	Key     string          `json:"key"`
	Title   string          `json:"title"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

// oddsAPIOutcome carries the quoted decimal price. Prices are decoded as
// decimal.Decimal so the wire value survives intact before the float64
// conversion at the model boundary.
type oddsAPIOutcome struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewOddsAPIClient creates a new the-odds-api.com client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *OddsAPIClient {
	if baseURL == "" {
		baseURL = "https://api.the-odds-api.com/v4"
	}
	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return oddsAPISourceName
}

// FetchOdds retrieves the current two-way tennis match markets. Only the
// first bookmaker and its first h2h market are kept per event; markets
// without exactly two outcomes are dropped.
func (c *OddsAPIClient) FetchOdds(ctx context.Context) ([]models.OddsQuote, error) {
	params := url.Values{}
	params.Set("regions", "eu")
	params.Set("markets", "h2h")
	params.Set("dateFormat", "iso")
	params.Set("oddsFormat", "decimal")
	params.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Get(ctx, c.baseURL+"/sports/tennis/odds?"+params.Encode())
	if err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeRateLimitExceeded, "request quota exhausted", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	quotes := make([]models.OddsQuote, 0, len(events))
	for _, ev := range events {
		quote, ok := c.convertEvent(ev)
		if !ok {
			continue
		}
		quotes = append(quotes, quote)
	}

	c.logger.WithFields(logrus.Fields{
		"source": oddsAPISourceName,
		"events": len(events),
		"quotes": len(quotes),
	}).Debug("Fetched odds")

	return quotes, nil
}

// convertEvent extracts the first bookmaker's h2h quote from an event
func (c *OddsAPIClient) convertEvent(ev oddsAPIEvent) (models.OddsQuote, bool) {
	if len(ev.Bookmakers) == 0 || len(ev.Bookmakers[0].Markets) == 0 {
		return models.OddsQuote{}, false
	}

	book := ev.Bookmakers[0]
	market := book.Markets[0]
	if len(market.Outcomes) != 2 {
		c.logger.WithFields(logrus.Fields{
			"event":    ev.ID,
			"outcomes": len(market.Outcomes),
		}).Debug("Skipping market without two outcomes")
		return models.OddsQuote{}, false
	}

	return models.OddsQuote{
		Player1:   strings.TrimSpace(market.Outcomes[0].Name),
		Player2:   strings.TrimSpace(market.Outcomes[1].Name),
		Price1:    market.Outcomes[0].Price.InexactFloat64(),
		Price2:    market.Outcomes[1].Price.InexactFloat64(),
		Bookmaker: book.Key,
	}, true
}
