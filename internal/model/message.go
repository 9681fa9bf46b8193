package model

// InboundMessage 核心消费的入站消息。签名校验在边界完成，核心默认输入可信。
type InboundMessage struct {
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
	MessageID string `json:"message_id"`
}

// OutboundMessage 出站应答
type OutboundMessage struct {
	To   string `json:"to"`
	Text string `json:"message"`
}

// LeaveDecisionMessage 审批结果事件，由后台接口发布、worker 消费并通知员工
type LeaveDecisionMessage struct {
	MessageID  string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	LeaveID    int64  `json:"leave_id"`
	Status     string `json:"status"` // approved / rejected
	DecidedBy  string `json:"decided_by"`
	Comments   string `json:"comments,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
