package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubScheduler struct {
	running bool
	next    time.Time
}

func (s stubScheduler) IsRunning() bool    { return s.running }
func (s stubScheduler) NextRun() time.Time { return s.next }

func newTestServer(db DatabasePinger, sched SchedulerStatus) *Server {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewServer(Config{
		ServiceName: "court-edge",
		Port:        "0",
		Logger:      log,
		DB:          db,
		Scheduler:   sched,
	})
}

func TestHandleLive(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleLive(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "court-edge", resp.Service)
}

func TestHandleHealthReportsNextRun(t *testing.T) {
	next := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	s := newTestServer(nil, stubScheduler{running: true, next: next})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-08-30T09:00:00Z", resp.NextRun)
	assert.NotEmpty(t, resp.Uptime)
}

func TestHandleReadyAllHealthy(t *testing.T) {
	s := newTestServer(stubPinger{}, stubScheduler{running: true})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["scheduler"])
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := newTestServer(stubPinger{err: errors.New("connection refused")}, stubScheduler{running: true})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadySchedulerStopped(t *testing.T) {
	s := newTestServer(stubPinger{}, stubScheduler{running: false})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyNotReady(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
