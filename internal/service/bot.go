package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"AttendBot/internal/model"
	"AttendBot/internal/repository"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/snowflake"
	"AttendBot/utils"
)

// Bot 考勤机器人核心：入站消息 -> 指令 -> 台账变更 -> 出站应答。
// 每条消息至多引发一次台账写入，同一员工同一天的读改写序列持有日粒度锁。
type Bot struct {
	directory  repository.EmployeeDirectory
	attendance repository.AttendanceStore
	leaves     repository.LeaveStore

	locks *dayLocks
	now   func() time.Time
	newID func() (int64, error)
}

func NewBot(directory repository.EmployeeDirectory, attendance repository.AttendanceStore, leaves repository.LeaveStore) *Bot {
	return &Bot{
		directory:  directory,
		attendance: attendance,
		leaves:     leaves,
		locks:      newDayLocks(),
		now:        time.Now,
		newID:      snowflake.NextID,
	}
}

// HandleMessage 处理一条已通过边界校验的入站消息，总是返回一条应答。
// 台账故障不向外抛，降级为通用错误文案。
func (b *Bot) HandleMessage(ctx context.Context, msg model.InboundMessage) model.OutboundMessage {
	cmd := ParseCommand(msg.Body)

	emp, err := b.directory.FindByPhone(ctx, msg.From)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.OutboundMessage{To: msg.From, Text: NotRegisteredText()}
		}
		logger.Logger.Error("directory lookup failed",
			zap.String("from", msg.From),
			zap.Error(err),
		)
		return model.OutboundMessage{To: msg.From, Text: ErrorText()}
	}

	var text string
	switch cmd.Kind {
	case model.CommandCheckIn:
		text = b.handleCheckIn(ctx, emp)
	case model.CommandCheckOut:
		text = b.handleCheckOut(ctx, emp)
	case model.CommandStatus:
		text = b.handleStatus(ctx, emp)
	case model.CommandHelp:
		text = HelpText()
	case model.CommandLeave:
		text = b.handleLeave(ctx, emp, cmd)
	default:
		text = UnknownCommandText()
	}

	return model.OutboundMessage{To: emp.Phone, Text: text}
}

// handleCheckIn 当日首次打卡建档，重复打卡是幂等空操作
func (b *Bot) handleCheckIn(ctx context.Context, emp *model.Employee) string {
	now := b.now()

	unlock := b.locks.acquire(emp.ID, now)
	defer unlock()

	rec, err := b.attendance.FindByEmployeeAndDate(ctx, emp.ID, now)
	if err == nil {
		return AlreadyCheckedInText(rec.CheckIn)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		logger.Logger.Error("attendance lookup failed", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return ErrorText()
	}

	recordID, err := b.newID()
	if err != nil {
		logger.Logger.Error("generate record id failed", zap.Error(err))
		return ErrorText()
	}

	rec = &model.AttendanceRecord{
		RecordID:   recordID,
		EmployeeID: emp.ID,
		Date:       utils.DateOf(now),
		CheckIn:    now,
		Status:     model.AttendanceStatusPresent,
		Source:     model.SourceWhatsApp,
	}
	if err := b.attendance.Create(ctx, rec); err != nil {
		// 数据库唯一索引兜底的并发重复，按已打卡应答
		if errors.Is(err, repository.ErrConflict) {
			if prior, findErr := b.attendance.FindByEmployeeAndDate(ctx, emp.ID, now); findErr == nil {
				return AlreadyCheckedInText(prior.CheckIn)
			}
		}
		logger.Logger.Error("create attendance record failed", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return ErrorText()
	}

	logger.Logger.Info("employee checked in",
		zap.Int64("employee_id", emp.ID),
		zap.String("employee", emp.EmployeeID),
	)
	return CheckInSuccessText(emp.FullName(), now, emp.Department)
}

// handleCheckOut 已打上班卡才允许下班打卡，CheckOut 与 TotalHours 一次性写入
func (b *Bot) handleCheckOut(ctx context.Context, emp *model.Employee) string {
	now := b.now()

	unlock := b.locks.acquire(emp.ID, now)
	defer unlock()

	rec, err := b.attendance.FindByEmployeeAndDate(ctx, emp.ID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CheckInFirstText()
		}
		logger.Logger.Error("attendance lookup failed", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return ErrorText()
	}

	if rec.CheckedOut() {
		var hours float64
		if rec.TotalHours != nil {
			hours = *rec.TotalHours
		}
		return AlreadyCheckedOutText(*rec.CheckOut, hours)
	}

	// 同日下班早于上班属于数据异常，工时钳为非负
	totalHours := utils.Round2(now.Sub(rec.CheckIn).Hours())
	if totalHours < 0 {
		totalHours = 0
	}

	if err := b.attendance.SetCheckOut(ctx, rec.RecordID, now, totalHours); err != nil {
		logger.Logger.Error("set check-out failed", zap.Int64("record_id", rec.RecordID), zap.Error(err))
		return ErrorText()
	}

	logger.Logger.Info("employee checked out",
		zap.Int64("employee_id", emp.ID),
		zap.Float64("total_hours", totalHours),
	)
	return CheckOutSuccessText(emp.FullName(), now, totalHours)
}

// handleStatus 只读查询，反映当日三种状态之一
func (b *Bot) handleStatus(ctx context.Context, emp *model.Employee) string {
	now := b.now()

	rec, err := b.attendance.FindByEmployeeAndDate(ctx, emp.ID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return StatusNotCheckedInText(emp.FullName(), now)
		}
		logger.Logger.Error("attendance lookup failed", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return ErrorText()
	}

	if rec.CheckedOut() {
		var hours float64
		if rec.TotalHours != nil {
			hours = *rec.TotalHours
		}
		return StatusCompletedText(emp.FullName(), now, rec.CheckIn, *rec.CheckOut, hours)
	}

	elapsed := utils.FormatElapsed(now.Sub(rec.CheckIn))
	return StatusCheckedInText(emp.FullName(), now, rec.CheckIn, elapsed)
}

// handleLeave 结构不合法回格式帮助，日期倒序明确拒绝，合法请求以 pending 建档
func (b *Bot) handleLeave(ctx context.Context, emp *model.Employee, cmd model.Command) string {
	if cmd.LeaveMalformed {
		return LeaveFormatHelpText()
	}
	if cmd.LeaveTo.Before(cmd.LeaveFrom) {
		return LeaveRangeInvalidText(cmd.LeaveFrom, cmd.LeaveTo)
	}

	leaveID, err := b.newID()
	if err != nil {
		logger.Logger.Error("generate leave id failed", zap.Error(err))
		return ErrorText()
	}

	days := LeaveDays(cmd.LeaveFrom, cmd.LeaveTo)
	rec := &model.LeaveRecord{
		LeaveID:    leaveID,
		EmployeeID: emp.ID,
		FromDate:   cmd.LeaveFrom,
		ToDate:     cmd.LeaveTo,
		Reason:     cmd.LeaveReason,
		Status:     model.LeaveStatusPending,
		AppliedAt:  b.now(),
		TotalDays:  days,
		Source:     model.SourceWhatsApp,
	}
	if err := b.leaves.Create(ctx, rec); err != nil {
		logger.Logger.Error("create leave record failed", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return ErrorText()
	}

	logger.Logger.Info("leave request submitted",
		zap.Int64("employee_id", emp.ID),
		zap.Int64("leave_id", leaveID),
		zap.Int("total_days", days),
	)
	return LeaveSubmittedText(emp.FullName(), cmd.LeaveFrom, cmd.LeaveTo, days, cmd.LeaveReason)
}
