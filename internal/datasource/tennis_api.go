package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
)

const tennisAPISourceName = "api_tennis"

// Only singles tours carry ratings; doubles and exhibition events are dropped
// at the source.
var singlesEventTypes = map[string]bool{
	"Atp Singles": true,
	"Wta Singles": true,
}

// TennisAPIClient implements FixtureSource and ResultSource against
// api-tennis.com
type TennisAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// tennisAPIResponse is the common envelope of api-tennis.com methods
type tennisAPIResponse struct {
	Success int              `json:"success"`
	Result  []tennisAPIEvent `json:"result"`
}

// tennisAPIEvent represents one event row from get_fixtures or get_results
type tennisAPIEvent struct {
	FirstPlayer    string `json:"event_first_player"`
	SecondPlayer   string `json:"event_second_player"`
	TournamentName string `json:"tournament_name"`
	EventTypeType  string `json:"event_type_type"`
	EventWinner    string `json:"event_winner"`
	// The fixtures feed reports the surface as event_surface, the results
	// feed as surface. Both are mapped so one struct covers both methods.
	EventSurface string `json:"event_surface"`
	Surface      string `json:"surface"`
}

// NewTennisAPIClient creates a new api-tennis.com client
func NewTennisAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *TennisAPIClient {
	if baseURL == "" {
		baseURL = "https://api.api-tennis.com/tennis/"
	}
	return &TennisAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *TennisAPIClient) Name() string {
	return tennisAPISourceName
}

// FetchFixtures retrieves the singles fixtures scheduled on the given date.
// Fixtures missing a surface default to hard, the most common surface on tour.
func (c *TennisAPIClient) FetchFixtures(ctx context.Context, date time.Time) ([]models.Fixture, error) {
	events, err := c.fetch(ctx, "get_fixtures", date)
	if err != nil {
		return nil, err
	}

	fixtures := make([]models.Fixture, 0, len(events))
	for _, ev := range events {
		if !singlesEventTypes[ev.EventTypeType] {
			continue
		}
		surface := strings.ToLower(strings.TrimSpace(ev.EventSurface))
		if surface == "" {
			surface = "hard"
		}
		fixtures = append(fixtures, models.Fixture{
			Player1:    strings.TrimSpace(ev.FirstPlayer),
			Player2:    strings.TrimSpace(ev.SecondPlayer),
			Tournament: strings.TrimSpace(ev.TournamentName),
			Surface:    models.ParseSurface(surface),
		})
	}

	c.logger.WithFields(logrus.Fields{
		"source":   tennisAPISourceName,
		"date":     date.Format("2006-01-02"),
		"fixtures": len(fixtures),
	}).Debug("Fetched fixtures")

	return fixtures, nil
}

// FetchResults retrieves the completed singles matches for the given date.
// Matches with no recorded winner are still in progress and skipped. Unlike
// fixtures, a missing surface stays unknown so the rating updater can reject
// the row rather than guess.
func (c *TennisAPIClient) FetchResults(ctx context.Context, date time.Time) ([]models.MatchResult, error) {
	events, err := c.fetch(ctx, "get_results", date)
	if err != nil {
		return nil, err
	}

	results := make([]models.MatchResult, 0, len(events))
	for _, ev := range events {
		if !singlesEventTypes[ev.EventTypeType] {
			continue
		}
		if strings.TrimSpace(ev.EventWinner) == "" {
			continue
		}
		surface := ev.Surface
		if surface == "" {
			surface = ev.EventSurface
		}
		results = append(results, models.MatchResult{
			Player1:    strings.TrimSpace(ev.FirstPlayer),
			Player2:    strings.TrimSpace(ev.SecondPlayer),
			Winner:     strings.TrimSpace(ev.EventWinner),
			Tournament: strings.TrimSpace(ev.TournamentName),
			Surface:    models.ParseSurface(strings.ToLower(strings.TrimSpace(surface))),
		})
	}

	c.logger.WithFields(logrus.Fields{
		"source":  tennisAPISourceName,
		"date":    date.Format("2006-01-02"),
		"results": len(results),
	}).Debug("Fetched results")

	return results, nil
}

// fetch calls one api-tennis.com method for a single day window
func (c *TennisAPIClient) fetch(ctx context.Context, method string, date time.Time) ([]tennisAPIEvent, error) {
	day := date.Format("2006-01-02")

	params := url.Values{}
	params.Set("method", method)
	params.Set("APIkey", c.apiKey)
	params.Set("date_start", day)
	params.Set("date_stop", day)

	resp, err := c.httpClient.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, NewDataSourceError(tennisAPISourceName, ErrCodeNetworkError, "failed to fetch "+method, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewDataSourceError(tennisAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(tennisAPISourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(tennisAPISourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var payload tennisAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(tennisAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	if payload.Success != 1 {
		return nil, NewDataSourceError(tennisAPISourceName, ErrCodeInvalidData,
			fmt.Sprintf("%s reported success=%d", method, payload.Success), ErrUpstreamEmpty)
	}

	return payload.Result, nil
}
