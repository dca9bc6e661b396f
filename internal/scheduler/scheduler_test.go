package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-edge/internal/models"
)

type stubRunner struct {
	calls int
}

func (r *stubRunner) Run(ctx context.Context) (*models.RunReport, error) {
	r.calls++
	return &models.RunReport{StartedAt: time.Now(), FinishedAt: time.Now()}, nil
}

func testLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSchedulerLifecycle(t *testing.T) {
	s := New(testLog())
	require.NoError(t, s.Schedule("detection", "0 9 * * *", &stubRunner{}))
	require.NoError(t, s.Schedule("settlement", "30 3 * * *", &stubRunner{}))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.NextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestSchedulerStartWithoutJobs(t *testing.T) {
	s := New(testLog())
	assert.Error(t, s.Start())
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	s := New(testLog())
	assert.Error(t, s.Schedule("bad", "not a cron", &stubRunner{}))
}

func TestSchedulerRejectsScheduleWhileRunning(t *testing.T) {
	s := New(testLog())
	require.NoError(t, s.Schedule("detection", "0 9 * * *", &stubRunner{}))
	require.NoError(t, s.Start())
	defer func() { _ = s.Stop() }()

	assert.Error(t, s.Schedule("late", "0 10 * * *", &stubRunner{}))
}
