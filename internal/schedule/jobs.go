package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/internal/model"
	"AttendBot/internal/repository"
	"AttendBot/internal/service"
	"AttendBot/pkg/logger"
	"AttendBot/utils"
)

// 触发器名称，后台手动触发接口也用它们寻址
const (
	TriggerDailyReminder    = "daily_checkin_reminder"
	TriggerCheckoutReminder = "checkout_reminder"
	TriggerAdminSummary     = "admin_daily_summary"
	TriggerWeeklyReport     = "weekly_report"
)

// SendFunc 发送抽象，生产绑定 whatsapp.Send，测试注入假实现
type SendFunc func(ctx context.Context, to, text string) error

// Jobs 批量通知任务集。发送经由有界工作池并发，单个收件人失败不中断其余发送。
type Jobs struct {
	directory  repository.EmployeeDirectory
	attendance repository.AttendanceStore
	reporter   *service.Reporter

	send     SendFunc
	poolSize int
	now      func() time.Time
	logger   *zap.Logger
}

func NewJobs(directory repository.EmployeeDirectory, attendance repository.AttendanceStore, send SendFunc, poolSize int) *Jobs {
	if poolSize <= 0 {
		poolSize = 8
	}
	return &Jobs{
		directory:  directory,
		attendance: attendance,
		reporter:   service.NewReporter(directory, attendance),
		send:       send,
		poolSize:   poolSize,
		now:        time.Now,
		logger:     logger.Logger,
	}
}

// BuildTriggers 按配置组装四个触发器。时间格式在配置层已校验。
func BuildTriggers(jobs *Jobs) ([]*Trigger, error) {
	weekdays := map[time.Weekday]bool{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
	}
	fridays := map[time.Weekday]bool{time.Friday: true}

	specs := []struct {
		name     string
		at       string
		weekdays map[time.Weekday]bool
		job      Job
	}{
		{TriggerDailyReminder, config.Cfg.DailyReminderAt, weekdays, jobs.DailyCheckInReminder},
		{TriggerCheckoutReminder, config.Cfg.CheckoutReminderAt, weekdays, jobs.CheckoutReminder},
		{TriggerAdminSummary, config.Cfg.AdminSummaryAt, weekdays, jobs.AdminDailySummary},
		{TriggerWeeklyReport, config.Cfg.WeeklyReportAt, fridays, jobs.WeeklyReport},
	}

	triggers := make([]*Trigger, 0, len(specs))
	for _, spec := range specs {
		hour, minute, err := utils.ParseClock(spec.at)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time for %s: %w", spec.name, err)
		}
		triggers = append(triggers, &Trigger{
			Name:     spec.name,
			Hour:     hour,
			Minute:   minute,
			Weekdays: spec.weekdays,
			Job:      spec.job,
		})
	}

	return triggers, nil
}

// DailyCheckInReminder 给今天还没有打卡记录的在职员工发上班提醒
func (j *Jobs) DailyCheckInReminder(ctx context.Context) error {
	employees, err := j.directory.ListActiveEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := j.attendance.ListByDate(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to list attendance records: %w", err)
	}

	checkedIn := make(map[int64]bool, len(records))
	for _, rec := range records {
		checkedIn[rec.EmployeeID] = true
	}

	var targets []sendTarget
	for _, emp := range employees {
		if checkedIn[emp.ID] {
			continue
		}
		targets = append(targets, sendTarget{
			Phone: emp.Phone,
			Text:  service.DailyReminderText(emp.FirstName),
		})
	}

	return j.fanOut(ctx, TriggerDailyReminder, targets)
}

// CheckoutReminder 给已上班未下班的员工发下班提醒
func (j *Jobs) CheckoutReminder(ctx context.Context) error {
	employees, err := j.directory.ListActiveEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := j.attendance.ListByDate(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to list attendance records: %w", err)
	}

	open := make(map[int64]bool, len(records))
	for _, rec := range records {
		if !rec.CheckedOut() {
			open[rec.EmployeeID] = true
		}
	}

	var targets []sendTarget
	for _, emp := range employees {
		if !open[emp.ID] {
			continue
		}
		targets = append(targets, sendTarget{
			Phone: emp.Phone,
			Text:  service.CheckoutReminderText(emp.FirstName),
		})
	}

	return j.fanOut(ctx, TriggerCheckoutReminder, targets)
}

// AdminDailySummary 给所有管理员发当日出勤统计
func (j *Jobs) AdminDailySummary(ctx context.Context) error {
	summary, err := j.reporter.DailySummary(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to compute daily summary: %w", err)
	}

	admins, err := j.directory.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	text := service.AdminDailySummaryText(summary.Date, summary.TotalEmployees, summary.Present, summary.Absent, summary.Late)

	targets := make([]sendTarget, 0, len(admins))
	for _, admin := range admins {
		targets = append(targets, sendTarget{Phone: admin.Phone, Text: text})
	}

	return j.fanOut(ctx, TriggerAdminSummary, targets)
}

// WeeklyReport 周五收盘：管理员收全员周报，员工收个人周摘要
func (j *Jobs) WeeklyReport(ctx context.Context) error {
	report, weekly, err := j.reporter.WeeklyReport(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to compute weekly report: %w", err)
	}

	admins, err := j.directory.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	adminText := service.AdminWeeklyReportText(
		report.From, report.To,
		report.TotalEmployees, report.PresentDays, report.PossibleDays,
		report.TotalHours,
	)

	targets := make([]sendTarget, 0, len(admins)+len(weekly))
	for _, admin := range admins {
		targets = append(targets, sendTarget{Phone: admin.Phone, Text: adminText})
	}
	for _, ew := range weekly {
		targets = append(targets, sendTarget{
			Phone: ew.Employee.Phone,
			Text:  service.WeeklySummaryText(ew.Employee.FullName(), ew.PresentDays, 5, ew.TotalHours),
		})
	}

	return j.fanOut(ctx, TriggerWeeklyReport, targets)
}

// Notice 广播类通知：给全部在职员工发同一段文案（维护、节假日等）
func (j *Jobs) Notice(ctx context.Context, text string) error {
	employees, err := j.directory.ListActiveEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	targets := make([]sendTarget, 0, len(employees))
	for _, emp := range employees {
		targets = append(targets, sendTarget{Phone: emp.Phone, Text: text})
	}

	return j.fanOut(ctx, "notice_broadcast", targets)
}

// NoticeTo 给指定员工发个人化通知（生日、周年）
func (j *Jobs) NoticeTo(ctx context.Context, emp *model.Employee, text string) error {
	return j.fanOut(ctx, "notice_personal", []sendTarget{{Phone: emp.Phone, Text: text}})
}

type sendTarget struct {
	Phone string
	Text  string
}

// fanOut 有界并发发送。逐收件人隔离失败，只在结束时汇总报告。
func (j *Jobs) fanOut(ctx context.Context, job string, targets []sendTarget) error {
	if len(targets) == 0 {
		j.logger.Info("No recipients for job", zap.String("job", job))
		return nil
	}

	start := time.Now()
	sem := make(chan struct{}, j.poolSize)
	var wg sync.WaitGroup
	var errCount int64

	for _, target := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(target sendTarget) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := j.send(ctx, target.Phone, target.Text); err != nil {
				atomic.AddInt64(&errCount, 1)
				j.logger.Error("Failed to send notification",
					zap.String("job", job),
					zap.String("to", target.Phone),
					zap.Error(err),
				)
			}
		}(target)
	}

	wg.Wait()

	j.logger.Info("Job fan-out completed",
		zap.String("job", job),
		zap.Int("recipient_count", len(targets)),
		zap.Int64("error_count", errCount),
		zap.Duration("duration", time.Since(start)),
	)

	if errCount > 0 {
		return fmt.Errorf("%s completed with %d errors", job, errCount)
	}
	return nil
}
