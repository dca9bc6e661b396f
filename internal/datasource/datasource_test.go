package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-edge/internal/models"
)

func testHTTPClient(t *testing.T) *RateLimitedHTTPClient {
	t.Helper()
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewRateLimitedHTTPClient(cfg, logger)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestTennisAPIFetchFixtures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "get_fixtures", r.URL.Query().Get("method"))
		assert.Equal(t, "test-key", r.URL.Query().Get("APIkey"))
		assert.Equal(t, r.URL.Query().Get("date_start"), r.URL.Query().Get("date_stop"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": 1,
			"result": [
				{
					"event_first_player": " Jannik Sinner ",
					"event_second_player": "Carlos Alcaraz",
					"tournament_name": "US Open",
					"event_type_type": "Atp Singles",
					"event_surface": "Hard"
				},
				{
					"event_first_player": "A",
					"event_second_player": "B",
					"tournament_name": "US Open",
					"event_type_type": "Atp Doubles",
					"event_surface": "Hard"
				},
				{
					"event_first_player": "Iga Swiatek",
					"event_second_player": "Aryna Sabalenka",
					"tournament_name": "US Open",
					"event_type_type": "Wta Singles",
					"event_surface": ""
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewTennisAPIClient(testHTTPClient(t), server.URL, "test-key", quietLogger())
	fixtures, err := client.FetchFixtures(context.Background(), time.Now())
	require.NoError(t, err)

	require.Len(t, fixtures, 2, "doubles events must be filtered out")
	assert.Equal(t, "Jannik Sinner", fixtures[0].Player1)
	assert.Equal(t, models.SurfaceHard, fixtures[0].Surface)
	assert.Equal(t, models.SurfaceHard, fixtures[1].Surface, "missing surface defaults to hard")
}

func TestTennisAPIFetchResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "get_results", r.URL.Query().Get("method"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": 1,
			"result": [
				{
					"event_first_player": "Jannik Sinner",
					"event_second_player": "Carlos Alcaraz",
					"tournament_name": "US Open",
					"event_type_type": "Atp Singles",
					"event_winner": "Carlos Alcaraz",
					"surface": "Hard"
				},
				{
					"event_first_player": "Still",
					"event_second_player": "Playing",
					"tournament_name": "US Open",
					"event_type_type": "Atp Singles",
					"event_winner": "",
					"surface": "Hard"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewTennisAPIClient(testHTTPClient(t), server.URL, "test-key", quietLogger())
	results, err := client.FetchResults(context.Background(), time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)

	require.Len(t, results, 1, "in-progress matches must be skipped")
	assert.Equal(t, "Carlos Alcaraz", results[0].Winner)
	assert.Equal(t, models.SurfaceHard, results[0].Surface)
}

func TestTennisAPIUnsuccessfulEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": 0, "result": []}`))
	}))
	defer server.Close()

	client := NewTennisAPIClient(testHTTPClient(t), server.URL, "test-key", quietLogger())
	_, err := client.FetchFixtures(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamEmpty))
}

func TestTennisAPIAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewTennisAPIClient(testHTTPClient(t), server.URL, "bad-key", quietLogger())
	_, err := client.FetchResults(context.Background(), time.Now())
	require.Error(t, err)

	var dsErr DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, ErrCodeAuthenticationFailed, dsErr.Code)
}

func TestOddsAPIFetchOdds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/tennis/odds", r.URL.Path)
		assert.Equal(t, "h2h", r.URL.Query().Get("markets"))
		assert.Equal(t, "decimal", r.URL.Query().Get("oddsFormat"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "ev1",
				"bookmakers": [
					{
						"key": "pinnacle",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "Jannik Sinner", "price": 1.80},
									{"name": "Carlos Alcaraz", "price": 2.20}
								]
							}
						]
					},
					{
						"key": "bet365",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "Jannik Sinner", "price": 1.75},
									{"name": "Carlos Alcaraz", "price": 2.30}
								]
							}
						]
					}
				]
			},
			{
				"id": "ev2",
				"bookmakers": []
			},
			{
				"id": "ev3",
				"bookmakers": [
					{
						"key": "pinnacle",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "Only One", "price": 1.10}
								]
							}
						]
					}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(t), server.URL, "test-key", quietLogger())
	quotes, err := client.FetchOdds(context.Background())
	require.NoError(t, err)

	require.Len(t, quotes, 1, "events without a two-way first market must be dropped")
	assert.Equal(t, "pinnacle", quotes[0].Bookmaker, "only the first bookmaker is kept")
	assert.Equal(t, 1.80, quotes[0].Price1)
	assert.Equal(t, 2.20, quotes[0].Price2)
}

func TestCachedOddsSource(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[
			{
				"id": "ev1",
				"bookmakers": [
					{
						"key": "pinnacle",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "A", "price": 1.50},
									{"name": "B", "price": 2.50}
								]
							}
						]
					}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(t), server.URL, "test-key", quietLogger())
	cached := NewCachedOddsSource(client, time.Minute)

	first, err := cached.FetchOdds(context.Background())
	require.NoError(t, err)
	second, err := cached.FetchOdds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second fetch must be served from cache")
	assert.Equal(t, first, second)
}

func TestHTTPClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testHTTPClient(t)
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPClientHonorsRequestContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testHTTPClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestCircuitBreakerOpens(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	client := NewRateLimitedHTTPClient(cfg, quietLogger())
	defer client.Close()

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), "http://127.0.0.1:1/unreachable")
		require.Error(t, err)
	}

	_, err := client.Get(context.Background(), "http://127.0.0.1:1/unreachable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}
