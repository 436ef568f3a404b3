package jobs

import (
	"context"
	"time"

	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// Имена sweep-задач в логах и метриках
const (
	sweepReleaseAbandoned = "release_abandoned"
	sweepAutoConfirm      = "auto_confirm"
	sweepMarkCompleted    = "mark_completed"
)

// Intervals интервалы запуска фоновых задач
type Intervals struct {
	ReleaseAbandoned time.Duration
	AutoConfirm      time.Duration
	MarkCompleted    time.Duration
}

// Sweeper управляет фоновыми задачами жизненного цикла бронирований
// Каждая задача крутится в своей горутине со своим интервалом; ошибки
// итерации логируются и не останавливают цикл
type Sweeper struct {
	bookingRepo  BookingRepository
	policy       domain.BookingPolicy
	intervals    Intervals
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	stopChan     chan struct{}
}

// NewSweeper создаёт новый экземпляр Sweeper
func NewSweeper(
	bookingRepo BookingRepository,
	policy domain.BookingPolicy,
	intervals Intervals,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		bookingRepo:  bookingRepo,
		policy:       policy,
		intervals:    intervals,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
// Порядок первого прохода: сначала освобождаются брошенные hold, затем
// автоподтверждение, чтобы не подтвердить бронирование с истекшим hold
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Sweeper: starting background tasks")

	go s.runTask(ctx, sweepReleaseAbandoned, s.intervals.ReleaseAbandoned, s.releaseAbandoned)
	go s.runTask(ctx, sweepAutoConfirm, s.intervals.AutoConfirm, s.autoConfirm)
	go s.runTask(ctx, sweepMarkCompleted, s.intervals.MarkCompleted, s.markCompleted)
}

// Stop останавливает фоновые задачи
func (s *Sweeper) Stop() {
	s.logger.Info("Sweeper: stopping background tasks")
	close(s.stopChan)
}

// runTask крутит одну задачу с фиксированным интервалом
func (s *Sweeper) runTask(ctx context.Context, name string, interval time.Duration, sweep func(ctx context.Context) (int64, error)) {
	// Первый запуск сразу при старте
	s.runOnce(ctx, name, sweep)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx, name, sweep)
		case <-s.stopChan:
			s.logger.Info("Sweeper: task %s stopped", name)
			return
		case <-ctx.Done():
			s.logger.Info("Sweeper: task %s cancelled", name)
			return
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context, name string, sweep func(ctx context.Context) (int64, error)) {
	count, err := sweep(ctx)
	if err != nil {
		s.logger.Error("Sweeper: task %s failed: %v", name, err)
		if s.metrics != nil {
			s.metrics.IncSweepFailure(name)
		}
		return
	}

	if count > 0 {
		s.logger.Info("Sweeper: task %s transitioned %d bookings", name, count)
	}
	if s.metrics != nil {
		s.metrics.AddSweepTransitions(name, count)
	}
}

// releaseAbandoned переводит pending бронирования с истекшим hold в abandoned
func (s *Sweeper) releaseAbandoned(ctx context.Context) (int64, error) {
	cutoff := s.timeProvider.Now().Add(-s.policy.HoldTimeout())
	return s.bookingRepo.ReleaseAbandoned(ctx, cutoff)
}

// autoConfirm подтверждает pending бронирования, до начала которых осталось
// меньше порога
func (s *Sweeper) autoConfirm(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()
	today := startOfDay(now)

	thresholdMinutes := now.Hour()*60 + now.Minute() + domain.AutoConfirmLeadMinutes
	// Порог не переваливает за полночь: хвост дня добирается следующим проходом
	if thresholdMinutes > 23*60+59 {
		thresholdMinutes = 23*60 + 59
	}

	return s.bookingRepo.AutoConfirmUpcoming(ctx, today, types.FromMinutes(thresholdMinutes))
}

// markCompleted завершает confirmed бронирования с прошедшим временем окончания
func (s *Sweeper) markCompleted(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()
	today := startOfDay(now)

	return s.bookingRepo.MarkCompleted(ctx, today, types.NewTimeString(now))
}

// startOfDay возвращает полночь календарного дня в зоне переданного времени
// Truncate здесь не годится: он режет по границам суток UTC и в первые часы
// локального дня даёт вчерашнюю дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
