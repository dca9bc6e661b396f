package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordHelpers(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordValueBets(3)
		RecordUnmatchedFixtures(2)
		RecordRejectedQuote()
		RecordSkippedResult("unresolved_player")
		RecordRatingUpdate()
		RecordNotificationSent()
		UpdateRatingsTracked(120)
		UpdateLastRunMatched(8)
		ObserveRunDuration("detection", 1.2)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordValueBets(1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "court_edge_value_bets_found_total")
}
