package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/internal/cache"
	"AttendBot/internal/repository"
	"AttendBot/internal/schedule"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/snowflake"
	"AttendBot/pkg/whatsapp"
	"AttendBot/storage"
	"AttendBot/storage/database"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	// 与 server、worker 共用同一套机器号配置即可，ID 只在写库路径使用
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	whatsapp.Init()

	db := database.DB()
	directory := repository.NewGormDirectory(db)
	attendance := repository.NewGormAttendanceStore(db)

	send := func(ctx context.Context, to, text string) error {
		_, err := whatsapp.Send(ctx, to, text)
		return err
	}
	jobs := schedule.NewJobs(directory, attendance, send, config.Cfg.SchedulerWorkerPool)

	triggers, err := schedule.BuildTriggers(jobs)
	if err != nil {
		logger.Logger.Fatal("Failed to build scheduler triggers", zap.Error(err))
	}

	s := schedule.NewScheduler(time.Duration(config.Cfg.SchedulerPollSeconds)*time.Second, triggers...)
	// 跨进程防重：同一触发器同一窗口只放行一个实例，Redis 故障时退化为进程内防重
	s.SetMarkFired(cache.TryMarkTriggerFired)

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", config.Cfg.ServiceName+"-scheduler"),
		zap.String("environment", config.Cfg.Environment),
		zap.Int("poll_seconds", config.Cfg.SchedulerPollSeconds),
	)

	s.Start(ctx)

	logger.Logger.Info("Scheduler service shutting down gracefully")
}
