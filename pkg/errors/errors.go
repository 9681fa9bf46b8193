package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 审批与后台接口错误。机器人指令的失败走对话模板回复，不走错误码。
var (
	LeaveNotFound       = Definition{Code: "LEAVE_NOT_FOUND", Message: "Leave request not found"}
	LeaveAlreadyDecided = Definition{Code: "LEAVE_ALREADY_DECIDED", Message: "Leave request already decided"}
	LeaveStatusInvalid  = Definition{Code: "LEAVE_STATUS_INVALID", Message: "Leave decision must be approved or rejected"}
	EmployeeNotFound    = Definition{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}
	TriggerNotFound     = Definition{Code: "TRIGGER_NOT_FOUND", Message: "Scheduler trigger not found"}
	NoticeTypeInvalid   = Definition{Code: "NOTICE_TYPE_INVALID", Message: "Notice type invalid"}
	WebhookSignatureBad = Definition{Code: "WEBHOOK_SIGNATURE_BAD", Message: "Webhook signature verification failed"}
	WebhookVerifyFailed = Definition{Code: "WEBHOOK_VERIFY_FAILED", Message: "Webhook verification handshake failed"}
	InvalidRequest      = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
)

// SkipMessageError 表示消费者应跳过（Ack 而非重投）的消息。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}
