package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/campus-hub/schedule-agent/internal/app"
	"github.com/campus-hub/schedule-agent/internal/client"
	"github.com/campus-hub/schedule-agent/internal/config"
	"github.com/campus-hub/schedule-agent/internal/export"
	"github.com/campus-hub/schedule-agent/internal/repository"
	"github.com/campus-hub/schedule-agent/internal/store"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Info("Starting schedule agent",
		zap.String("environment", cfg.Environment),
		zap.String("storage", string(cfg.StorageBackend)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Выбираем backend персистентности
	var snapshots store.Snapshotter
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("Failed to create connection pool", zap.Error(err))
		}
		defer pool.Close()

		migrator, err := app.NewMigrator(pool, "migrations", logger)
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		snapshots = repository.NewOverlayRepository(pool, logger)
	case config.StorageFile:
		snapshots = repository.NewFileOverlayRepository(cfg.StoragePath, logger)
	}

	st := store.New(snapshots, logger)

	// Восстанавливаем состояние прошлого запуска. Битый снапшот не
	// останавливает агента — продолжаем с пустым состоянием.
	if err := st.Hydrate(ctx); err != nil {
		logger.Warn("Failed to restore persisted state, starting empty", zap.Error(err))
	}

	scheduleClient := client.NewScheduleClient(cfg, logger)

	scheduler := app.NewScheduler(scheduleClient, st, cfg.RefreshInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Выгрузка видимой ленты в iCalendar при каждом изменении
	if cfg.ICSExportPath != "" {
		events, cancelSub := st.SubscribeVisibleEvents()
		defer cancelSub()
		go func() {
			for feed := range events {
				if err := export.WriteICS(cfg.ICSExportPath, feed); err != nil {
					logger.Error("Failed to export ICS", zap.Error(err))
					continue
				}
				logger.Debug("ICS export updated",
					zap.String("path", cfg.ICSExportPath),
					zap.Int("events", len(feed)))
			}
		}()
	}

	// Ждём сигнала завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down schedule agent")
}
