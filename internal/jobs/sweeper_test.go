package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/types"
)

type fakeBookingRepo struct {
	releaseCutoff    time.Time
	confirmDate      time.Time
	confirmThreshold types.TimeString
	completeDate     time.Time
	completeNow      types.TimeString

	count int64
	err   error
}

func (f *fakeBookingRepo) ReleaseAbandoned(_ context.Context, cutoff time.Time) (int64, error) {
	f.releaseCutoff = cutoff
	return f.count, f.err
}

func (f *fakeBookingRepo) AutoConfirmUpcoming(_ context.Context, date time.Time, threshold types.TimeString) (int64, error) {
	f.confirmDate = date
	f.confirmThreshold = threshold
	return f.count, f.err
}

func (f *fakeBookingRepo) MarkCompleted(_ context.Context, today time.Time, now types.TimeString) (int64, error) {
	f.completeDate = today
	f.completeNow = now
	return f.count, f.err
}

type fakeMetrics struct {
	transitions map[string]int64
	failures    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		transitions: make(map[string]int64),
		failures:    make(map[string]int),
	}
}

func (f *fakeMetrics) AddSweepTransitions(sweep string, count int64) {
	f.transitions[sweep] += count
}

func (f *fakeMetrics) IncSweepFailure(sweep string) {
	f.failures[sweep]++
}

type fixedTimeProvider struct{ now time.Time }

func (f fixedTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestSweeper(repo *fakeBookingRepo, metrics Metrics, now time.Time) *Sweeper {
	return NewSweeper(
		repo,
		domain.DefaultBookingPolicy(),
		Intervals{
			ReleaseAbandoned: time.Minute,
			AutoConfirm:      5 * time.Minute,
			MarkCompleted:    15 * time.Minute,
		},
		metrics,
		fixedTimeProvider{now: now},
		noopLogger{},
	)
}

func TestReleaseAbandoned_Cutoff(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{count: 3}
	s := newTestSweeper(repo, newFakeMetrics(), now)

	count, err := s.releaseAbandoned(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), count)
	assert.Equal(t, now.Add(-10*time.Minute), repo.releaseCutoff)
}

func TestAutoConfirm_Threshold(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 45, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	s := newTestSweeper(repo, newFakeMetrics(), now)

	_, err := s.autoConfirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), repo.confirmDate)
	assert.Equal(t, types.TimeString("10:15"), repo.confirmThreshold)
}

func TestAutoConfirm_LocalDayAfterUTCMidnight(t *testing.T) {
	// 01:00 местного времени UTC+3 — по UTC ещё вчера; дата должна
	// остаться местной, иначе свип ищет бронирования за прошлый день
	msk := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, time.September, 1, 1, 0, 0, 0, msk)
	repo := &fakeBookingRepo{}
	s := newTestSweeper(repo, newFakeMetrics(), now)

	_, err := s.autoConfirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, msk), repo.confirmDate)
	assert.Equal(t, "2026-09-01", repo.confirmDate.Format("2006-01-02"))
	assert.Equal(t, types.TimeString("01:30"), repo.confirmThreshold)
}

func TestAutoConfirm_ThresholdCappedAtEndOfDay(t *testing.T) {
	now := time.Date(2026, time.September, 1, 23, 50, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	s := newTestSweeper(repo, newFakeMetrics(), now)

	_, err := s.autoConfirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("23:59"), repo.confirmThreshold)
}

func TestMarkCompleted_Arguments(t *testing.T) {
	now := time.Date(2026, time.September, 1, 18, 30, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	s := newTestSweeper(repo, newFakeMetrics(), now)

	_, err := s.markCompleted(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), repo.completeDate)
	assert.Equal(t, types.TimeString("18:30"), repo.completeNow)
}

func TestMarkCompleted_LocalDayAfterUTCMidnight(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, time.September, 1, 0, 30, 0, 0, msk)
	repo := &fakeBookingRepo{}
	s := newTestSweeper(repo, newFakeMetrics(), now)

	_, err := s.markCompleted(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", repo.completeDate.Format("2006-01-02"))
	assert.Equal(t, types.TimeString("00:30"), repo.completeNow)
}

func TestRunOnce_Metrics(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	t.Run("successful sweep records transitions", func(t *testing.T) {
		metrics := newFakeMetrics()
		repo := &fakeBookingRepo{count: 2}
		s := newTestSweeper(repo, metrics, now)

		s.runOnce(context.Background(), sweepReleaseAbandoned, s.releaseAbandoned)

		assert.Equal(t, int64(2), metrics.transitions[sweepReleaseAbandoned])
		assert.Empty(t, metrics.failures)
	})

	t.Run("failed sweep records failure", func(t *testing.T) {
		metrics := newFakeMetrics()
		repo := &fakeBookingRepo{err: errors.New("db down")}
		s := newTestSweeper(repo, metrics, now)

		s.runOnce(context.Background(), sweepAutoConfirm, s.autoConfirm)

		assert.Equal(t, 1, metrics.failures[sweepAutoConfirm])
		assert.Empty(t, metrics.transitions)
	})
}

func TestSweeper_StartStop(t *testing.T) {
	repo := &fakeBookingRepo{}
	s := newTestSweeper(repo, newFakeMetrics(), time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	// Первый проход выполняется сразу при старте
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.False(t, repo.releaseCutoff.IsZero())
	assert.False(t, repo.confirmDate.IsZero())
	assert.False(t, repo.completeDate.IsZero())
}
