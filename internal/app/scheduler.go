package app

import (
	"context"
	"time"

	"github.com/campus-hub/schedule-agent/internal/client"
	"github.com/campus-hub/schedule-agent/internal/store"
	"go.uber.org/zap"
)

// Scheduler управляет фоновым обновлением расписания
type Scheduler struct {
	client   *client.ScheduleClient
	store    *store.Store
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик обновлений
func NewScheduler(scheduleClient *client.ScheduleClient, st *store.Store, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		client:   scheduleClient,
		store:    st,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновое обновление
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting schedule refresh loop",
		zap.Duration("interval", s.interval))

	go s.runRefreshTask(ctx)
}

// Stop останавливает фоновое обновление
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping schedule refresh loop")
	close(s.stopChan)
}

// runRefreshTask периодически перезагружает расписание с сервера
func (s *Scheduler) runRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.stopChan:
			s.logger.Info("Schedule refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Schedule refresh task cancelled")
			return
		}
	}
}

// refresh загружает свежее расписание и отдаёт его в store.
// Ошибка сети не фатальна: store продолжает отдавать последнее
// известное состояние, следующая попытка по тикеру.
func (s *Scheduler) refresh(ctx context.Context) {
	sched, err := s.client.FetchSchedule(ctx)
	if err != nil {
		s.logger.Error("Failed to refresh schedule", zap.Error(err))
		return
	}

	s.store.SetSchedule(sched)

	s.logger.Info("Schedule refreshed",
		zap.Int("plannings", len(sched.Plannings)),
		zap.Int("visible_events", len(s.store.VisibleEvents())))
}
