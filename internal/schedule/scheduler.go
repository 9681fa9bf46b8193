package schedule

// 壁钟驱动的触发引擎：短周期轮询，分钟命中即触发，天然做到每窗口至多一次

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"AttendBot/pkg/errors"
	"AttendBot/pkg/logger"
)

// Job 批量通知任务
type Job func(ctx context.Context) error

// Trigger 具名触发器：目标时刻 + 星期谓词 + 任务
type Trigger struct {
	Name     string
	Hour     int
	Minute   int
	Weekdays map[time.Weekday]bool
	Job      Job
}

func (t *Trigger) matches(now time.Time) bool {
	if !t.Weekdays[now.Weekday()] {
		return false
	}
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

// MarkFiredFunc 跨进程的窗口防重标记（SETNX），返回 true 表示本进程抢到该窗口。
// 进程内的 lastFired 表已经保证单实例不重复，这层用于重启和多实例部署。
type MarkFiredFunc func(ctx context.Context, trigger, window string) (bool, error)

type Scheduler struct {
	logger   *zap.Logger
	triggers []*Trigger
	poll     time.Duration
	now      func() time.Time

	// markFired 可选，Redis 不可用时降级为仅进程内防重
	markFired MarkFiredFunc

	mu        sync.Mutex
	lastFired map[string]string // 触发器名 -> 已触发的窗口（日期）
}

func NewScheduler(poll time.Duration, triggers ...*Trigger) *Scheduler {
	return &Scheduler{
		logger:    logger.Logger,
		triggers:  triggers,
		poll:      poll,
		now:       time.Now,
		lastFired: make(map[string]string),
	}
}

// SetMarkFired 注入跨进程防重标记
func (s *Scheduler) SetMarkFired(fn MarkFiredFunc) {
	s.markFired = fn
}

// Start 启动轮询循环，阻塞直到 ctx 取消。
// 轮询周期必须 <= 60s，否则可能跳过目标分钟（配置层已校验）。
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Scheduler started",
		zap.Int("trigger_count", len(s.triggers)),
		zap.Duration("poll", s.poll),
	)

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick 评估所有触发器。命中的任务各自在独立 goroutine 中运行，
// 一个触发器的慢任务不会阻塞其它触发器。
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()
	window := now.Format("2006-01-02")

	for _, t := range s.triggers {
		if !t.matches(now) {
			continue
		}

		s.mu.Lock()
		if s.lastFired[t.Name] == window {
			s.mu.Unlock()
			continue
		}
		s.lastFired[t.Name] = window
		s.mu.Unlock()

		if s.markFired != nil {
			acquired, err := s.markFired(ctx, t.Name, window)
			if err != nil {
				s.logger.Warn("Failed to mark trigger fired, proceeding with in-process guard only",
					zap.String("trigger", t.Name),
					zap.Error(err),
				)
			} else if !acquired {
				s.logger.Info("Trigger window already fired elsewhere, skipping",
					zap.String("trigger", t.Name),
					zap.String("window", window),
				)
				continue
			}
		}

		go s.run(ctx, t)
	}
}

func (s *Scheduler) run(ctx context.Context, t *Trigger) {
	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	start := time.Now()
	s.logger.Info("Trigger fired", zap.String("trigger", t.Name))

	if err := t.Job(runCtx); err != nil {
		s.logger.Error("Trigger job failed",
			zap.String("trigger", t.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Trigger job completed",
		zap.String("trigger", t.Name),
		zap.Duration("duration", time.Since(start)),
	)
}

// RunTrigger 手动触发指定任务（后台诊断接口），同步执行，不触碰防重窗口
func (s *Scheduler) RunTrigger(ctx context.Context, name string) error {
	for _, t := range s.triggers {
		if t.Name == name {
			s.logger.Info("Trigger fired manually", zap.String("trigger", name))
			return t.Job(ctx)
		}
	}
	return errors.TriggerNotFound
}

// TriggerNames 已注册的触发器名
func (s *Scheduler) TriggerNames() []string {
	names := make([]string, 0, len(s.triggers))
	for _, t := range s.triggers {
		names = append(names, t.Name)
	}
	return names
}
