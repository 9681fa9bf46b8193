package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/internal/queue"
	"AttendBot/internal/repository"
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

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	whatsapp.Init()

	db := database.DB()
	leaves := repository.NewGormLeaveStore(db)
	directory := repository.NewGormDirectory(db)

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 消费循环阻塞运行，连接关闭时退出
	go func() {
		if err := queue.StartLeaveDecisionConsumer(ctx, leaves, directory); err != nil {
			logger.Logger.Error("Leave decision consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
