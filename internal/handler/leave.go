package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"AttendBot/internal/model"
	"AttendBot/internal/queue"
	"AttendBot/internal/repository"
	apperrors "AttendBot/pkg/errors"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/response"
)

// DecideLeaveRequest 审批请求体
type DecideLeaveRequest struct {
	Status    string `json:"status"`
	DecidedBy string `json:"decided_by"`
	Comments  string `json:"comments"`
}

// DecideLeave 审批一条待处理的请假申请，并投递审批结果事件
func DecideLeave(ctx context.Context, c *app.RequestContext) {
	leaveID, err := strconv.ParseInt(c.Param("leave_id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, apperrors.LeaveNotFound)
		return
	}

	var req DecideLeaveRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	status := model.LeaveStatus(req.Status)
	if status != model.LeaveStatusApproved && status != model.LeaveStatusRejected {
		response.Error(ctx, c, apperrors.LeaveStatusInvalid)
		return
	}

	leave, err := deps.Leaves.FindByLeaveID(ctx, leaveID)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Error(ctx, c, apperrors.LeaveNotFound)
			return
		}
		response.Error(ctx, c, err)
		return
	}
	if leave.Status != model.LeaveStatusPending {
		response.Error(ctx, c, apperrors.LeaveAlreadyDecided)
		return
	}

	if err := deps.Leaves.SetStatus(ctx, leaveID, status, req.DecidedBy, req.Comments); err != nil {
		response.Error(ctx, c, err)
		return
	}

	// 审批结果已落库，事件投递失败不回滚，留给人工补发
	if err := queue.PublishLeaveDecision(model.LeaveDecisionMessage{
		LeaveID:   leaveID,
		Status:    string(status),
		DecidedBy: req.DecidedBy,
		Comments:  req.Comments,
	}); err != nil {
		logger.Logger.Error("Failed to publish leave decision event",
			zap.Int64("leave_id", leaveID),
			zap.Error(err),
		)
	}

	response.Success(ctx, c, map[string]interface{}{
		"leave_id": leaveID,
		"status":   string(status),
	})
}
