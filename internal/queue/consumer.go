package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"AttendBot/internal/cache"
	"AttendBot/internal/model"
	"AttendBot/internal/repository"
	"AttendBot/internal/service"
	"AttendBot/pkg/errors"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/whatsapp"
	"AttendBot/storage/mq"
)

// StartLeaveDecisionConsumer 消费审批结果事件，向申请人推送审批通知。
// 幂等：同一 MessageID 只处理一次；台账里找不到的记录直接丢弃。
func StartLeaveDecisionConsumer(ctx context.Context, leaves repository.LeaveStore, directory repository.EmployeeDirectory) error {
	handler := func(body []byte) error {
		var msg model.LeaveDecisionMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal leave decision message: %w", err)
		}

		processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，宁可重复通知也不丢通知
		} else if !processed {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.Int64("leave_id", msg.LeaveID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing leave decision",
			zap.String("message_id", msg.MessageID),
			zap.Int64("leave_id", msg.LeaveID),
			zap.String("status", msg.Status),
		)

		leave, err := leaves.FindByLeaveID(ctx, msg.LeaveID)
		if err != nil {
			if err == repository.ErrNotFound {
				return &errors.SkipMessageError{Reason: fmt.Sprintf("leave %d not found", msg.LeaveID)}
			}
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to load leave record: %w", err)
		}

		emp, err := directory.FindByID(ctx, leave.EmployeeID)
		if err != nil {
			if err == repository.ErrNotFound {
				return &errors.SkipMessageError{Reason: fmt.Sprintf("employee %d not found", leave.EmployeeID)}
			}
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to load employee: %w", err)
		}

		var text string
		switch model.LeaveStatus(msg.Status) {
		case model.LeaveStatusApproved:
			text = service.LeaveApprovedText(emp.FullName(), leave.FromDate, leave.ToDate, msg.DecidedBy, msg.Comments)
		case model.LeaveStatusRejected:
			text = service.LeaveRejectedText(emp.FullName(), leave.FromDate, leave.ToDate, msg.DecidedBy, msg.Comments)
		default:
			return &errors.SkipMessageError{Reason: fmt.Sprintf("unknown decision status %q", msg.Status)}
		}

		if _, err := whatsapp.Send(ctx, emp.Phone, text); err != nil {
			// 发送失败取消标记，允许消息重投后重试
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to send leave decision notification: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueLeaveDecision,
		ConsumerTag:   "leave_decision_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}
