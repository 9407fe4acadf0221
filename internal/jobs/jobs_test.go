package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sweepHandlerMock struct{ mock.Mock }

func (m *sweepHandlerMock) Handle(ctx context.Context, cmd commands.SweepCommand) (commands.SweepResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type linkExpiryHandlerMock struct{ mock.Mock }

func (m *linkExpiryHandlerMock) Handle(ctx context.Context, cmd commands.ExpireShareLinksCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestRescheduleJob_Run(t *testing.T) {
	handler := &sweepHandlerMock{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SweepCommand) bool {
		return cmd.Now().Equal(testNow) && cmd.BatchSize() == 25
	})).Return(commands.SweepResult{Processed: 2, Skipped: 1, Failed: 1}, nil).Once()

	job := NewRescheduleJob(handler, "@every 5m", 25, discardLogger())
	job.now = func() time.Time { return testNow }

	processed := testutil.ToFloat64(metrics.SweepRecordsTotal.WithLabelValues("reschedule", "processed"))
	failed := testutil.ToFloat64(metrics.SweepRecordsTotal.WithLabelValues("reschedule", "failed"))

	require.NoError(t, job.run(context.Background()))
	assert.InDelta(t, processed+2, testutil.ToFloat64(metrics.SweepRecordsTotal.WithLabelValues("reschedule", "processed")), 0)
	assert.InDelta(t, failed+1, testutil.ToFloat64(metrics.SweepRecordsTotal.WithLabelValues("reschedule", "failed")), 0)
	handler.AssertExpectations(t)
}

func TestAutoReturnJob_RunPropagatesHandlerError(t *testing.T) {
	boom := errors.New("db down")
	handler := &sweepHandlerMock{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{}, boom).Once()

	job := NewAutoReturnJob(handler, "@every 10m", 0, discardLogger())
	job.now = func() time.Time { return testNow }

	err := job.run(context.Background())

	require.ErrorIs(t, err, boom)
}

func TestAutoReturnJob_DefaultBatchSize(t *testing.T) {
	handler := &sweepHandlerMock{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SweepCommand) bool {
		return cmd.BatchSize() == commands.DefaultSweepBatchSize
	})).Return(commands.SweepResult{}, nil).Once()

	job := NewAutoReturnJob(handler, "@every 10m", 0, discardLogger())

	require.NoError(t, job.run(context.Background()))
	handler.AssertExpectations(t)
}

func TestLinkExpiryJob_Run(t *testing.T) {
	handler := &linkExpiryHandlerMock{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(3, nil).Once()

	job := NewLinkExpiryJob(handler, "@every 15m", 50, discardLogger())
	job.now = func() time.Time { return testNow }
	before := testutil.ToFloat64(metrics.SweepRecordsTotal.WithLabelValues("link_expiry", "processed"))

	require.NoError(t, job.run(context.Background()))
	assert.InDelta(t, before+3, testutil.ToFloat64(metrics.SweepRecordsTotal.WithLabelValues("link_expiry", "processed")), 0)
}

func TestScheduledJob_RejectsInvalidSchedule(t *testing.T) {
	job := newScheduledJob("broken", "every now and then", func(context.Context) error { return nil }, discardLogger())

	err := job.Start()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestScheduledJob_FiresOnSchedule(t *testing.T) {
	var runs atomic.Int32
	job := newScheduledJob("ticker", "* * * * * *", func(context.Context) error {
		runs.Add(1)
		return nil
	}, discardLogger())

	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	schedules := DefaultSchedules()
	schedules.LinkExpiry = "not a schedule"
	manager := NewJobManager(&sweepHandlerMock{}, &sweepHandlerMock{}, &linkExpiryHandlerMock{}, schedules, discardLogger())

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "link_expiry")
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := NewJobManager(&sweepHandlerMock{}, &sweepHandlerMock{}, &linkExpiryHandlerMock{},
		DefaultSchedules(), discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
