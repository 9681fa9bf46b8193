package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"AttendBot/internal/model"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/snowflake"
	"AttendBot/storage/mq"
)

// PublishLeaveDecision 发布审批结果事件，由 worker 消费后通知员工
func PublishLeaveDecision(msg model.LeaveDecisionMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate message id: %w", err)
		}
		msg.MessageID = fmt.Sprintf("leave_decision_%d", id)
	}
	if msg.OccurredAt == "" {
		msg.OccurredAt = time.Now().Format(time.RFC3339)
	}

	if err := mq.PublishMessage(mq.ExchangeAttendance, mq.RoutingKeyLeaveDecision, msg); err != nil {
		return fmt.Errorf("failed to publish leave decision: %w", err)
	}

	logger.Logger.Info("Leave decision published",
		zap.String("message_id", msg.MessageID),
		zap.Int64("leave_id", msg.LeaveID),
		zap.String("status", msg.Status),
	)
	return nil
}
