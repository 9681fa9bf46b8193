package service

import (
	"regexp"
	"strings"
	"time"

	"AttendBot/internal/model"
)

// 指令规则按优先级排列。"check out" 必须先于宽松的 "leave" 规则命中，
// 否则 "check out and leave early" 这类文本会被误判为请假。
var commandRules = []struct {
	kind     model.CommandKind
	keywords []string
}{
	{model.CommandCheckIn, []string{"checkin", "check in"}},
	{model.CommandCheckOut, []string{"checkout", "check out"}},
	{model.CommandStatus, []string{"status"}},
	{model.CommandHelp, []string{"help"}},
}

var leavePattern = regexp.MustCompile(`(?i)leave\s+(\d{4}-\d{2}-\d{2})\s+to\s+(\d{4}-\d{2}-\d{2})\s+(.+)`)

// ParseCommand 将入站自由文本解析为指令。大小写不敏感，允许关键字出现在句中。
// 解析永不失败：结构不合法的请假降级为 LeaveMalformed，其余未识别文本为 Unknown。
func ParseCommand(raw string) model.Command {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	cmd := model.Command{Kind: model.CommandUnknown, Raw: raw}

	for _, rule := range commandRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				cmd.Kind = rule.kind
				return cmd
			}
		}
	}

	if strings.Contains(normalized, "leave") {
		cmd.Kind = model.CommandLeave
		parseLeave(raw, &cmd)
	}

	return cmd
}

// parseLeave 提取 "leave YYYY-MM-DD to YYYY-MM-DD reason" 结构。
// 日期倒序不在这里判定，由请假处理方拒绝并给出专门的提示。
func parseLeave(raw string, cmd *model.Command) {
	m := leavePattern.FindStringSubmatch(raw)
	if m == nil {
		cmd.LeaveMalformed = true
		return
	}

	from, errFrom := time.ParseInLocation("2006-01-02", m[1], time.Local)
	to, errTo := time.ParseInLocation("2006-01-02", m[2], time.Local)
	reason := strings.TrimSpace(m[3])
	if errFrom != nil || errTo != nil || reason == "" {
		cmd.LeaveMalformed = true
		return
	}

	cmd.LeaveFrom = from
	cmd.LeaveTo = to
	cmd.LeaveReason = reason
}

// LeaveDays 含首尾的请假天数。按日历日计数：
// 夏令时切换日不足 24 小时，直接用时长换算会少算一天。
func LeaveDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours()/24) + 1
}
