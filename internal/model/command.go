package model

import "time"

// CommandKind 指令类型枚举
type CommandKind string

const (
	CommandCheckIn  CommandKind = "check_in"
	CommandCheckOut CommandKind = "check_out"
	CommandStatus   CommandKind = "status"
	CommandHelp     CommandKind = "help"
	CommandLeave    CommandKind = "leave"
	CommandUnknown  CommandKind = "unknown"
)

// Command 入站消息解析出的指令。Leave 字段仅在 Kind == CommandLeave 时有意义。
type Command struct {
	Kind CommandKind
	Raw  string

	// 请假指令的解析结果。Malformed 表示识别到 leave 关键字但结构不合法，
	// 应答复格式帮助而不是 Unknown。
	LeaveFrom      time.Time
	LeaveTo        time.Time
	LeaveReason    string
	LeaveMalformed bool
}
