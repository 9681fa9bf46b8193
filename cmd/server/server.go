package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/internal/cache"
	"AttendBot/internal/handler"
	"AttendBot/internal/middleware"
	"AttendBot/internal/repository"
	"AttendBot/internal/router"
	"AttendBot/internal/schedule"
	"AttendBot/internal/service"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/otel"
	"AttendBot/pkg/snowflake"
	"AttendBot/pkg/whatsapp"
	"AttendBot/storage"
	"AttendBot/storage/database"
)

func main() {
	// 日志部分
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

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// WhatsApp 传输层：凭据缺失时降级为 demo 模式，不会阻止启动
	whatsapp.Init()
	if !config.Cfg.WhatsAppConfigured() {
		logger.Logger.Info("WhatsApp credentials missing, running in demo mode")
	}

	// 链路追踪按需开启
	var (
		tracerOpts []hertzconfig.Option
		tracerMWs  []app.HandlerFunc
	)
	if config.Cfg.OTLPEndpoint != "" {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:    config.Cfg.ServiceName,
			ServiceVersion: "1.0.0",
			Environment:    config.Cfg.Environment,
			OTLPEndpoint:   config.Cfg.OTLPEndpoint,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize OpenTelemetry", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Logger.Error("Failed to shutdown tracer provider", zap.Error(err))
				}
			}()

			tracerCfg, tracerMW := middleware.NewServerTracerConfig()
			tracerOpts = append(tracerOpts, tracerCfg)
			tracerMWs = append(tracerMWs, tracerMW)
		}
	}

	// 组装业务依赖
	db := database.DB()
	directory := repository.NewGormDirectory(db)
	attendance := repository.NewGormAttendanceStore(db)
	leaves := repository.NewGormLeaveStore(db)

	bot := service.NewBot(directory, attendance, leaves)

	send := func(ctx context.Context, to, text string) error {
		_, err := whatsapp.Send(ctx, to, text)
		return err
	}
	jobs := schedule.NewJobs(directory, attendance, send, config.Cfg.SchedulerWorkerPool)

	triggers, err := schedule.BuildTriggers(jobs)
	if err != nil {
		logger.Logger.Fatal("Failed to build scheduler triggers", zap.Error(err))
	}
	// server 只持有调度器用于手动触发，轮询循环由 scheduler 进程负责
	sched := schedule.NewScheduler(time.Duration(config.Cfg.SchedulerPollSeconds)*time.Second, triggers...)
	sched.SetMarkFired(cache.TryMarkTriggerFired)

	handler.Init(handler.Deps{
		Bot:       bot,
		Scheduler: sched,
		Jobs:      jobs,
		Directory: directory,
		Leaves:    leaves,
	})

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	h := server.Default(append(tracerOpts, server.WithHostPorts(addr))...)
	for _, mw := range tracerMWs {
		h.Use(mw)
	}

	router.Register(h)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
