package service

import (
	"testing"
	"time"

	"AttendBot/internal/model"
)

func TestParseCommandKinds(t *testing.T) {
	cases := []struct {
		input string
		want  model.CommandKind
	}{
		{"CheckIn", model.CommandCheckIn},
		{"  check in now ", model.CommandCheckIn},
		{"CHECKOUT", model.CommandCheckOut},
		{"please check out", model.CommandCheckOut},
		{"status", model.CommandStatus},
		{"what is my STATUS", model.CommandStatus},
		{"help", model.CommandHelp},
		{"leave 2025-07-20 to 2025-07-22 vacation", model.CommandLeave},
		{"good morning", model.CommandUnknown},
		{"", model.CommandUnknown},
	}

	for _, c := range cases {
		got := ParseCommand(c.input)
		if got.Kind != c.want {
			t.Errorf("ParseCommand(%q).Kind = %q, want %q", c.input, got.Kind, c.want)
		}
	}
}

// "check out" 要先于 "leave" 命中
func TestParseCommandPriority(t *testing.T) {
	got := ParseCommand("check out and leave early")
	if got.Kind != model.CommandCheckOut {
		t.Fatalf("Kind = %q, want %q", got.Kind, model.CommandCheckOut)
	}
}

func TestParseLeaveWellFormed(t *testing.T) {
	got := ParseCommand("leave 2025-07-20 to 2025-07-22 family vacation")

	if got.Kind != model.CommandLeave {
		t.Fatalf("Kind = %q, want %q", got.Kind, model.CommandLeave)
	}
	if got.LeaveMalformed {
		t.Fatal("LeaveMalformed = true, want false")
	}

	wantFrom := time.Date(2025, 7, 20, 0, 0, 0, 0, time.Local)
	wantTo := time.Date(2025, 7, 22, 0, 0, 0, 0, time.Local)
	if !got.LeaveFrom.Equal(wantFrom) || !got.LeaveTo.Equal(wantTo) {
		t.Fatalf("dates = %v..%v, want %v..%v", got.LeaveFrom, got.LeaveTo, wantFrom, wantTo)
	}
	if got.LeaveReason != "family vacation" {
		t.Fatalf("LeaveReason = %q, want %q", got.LeaveReason, "family vacation")
	}
	if days := LeaveDays(got.LeaveFrom, got.LeaveTo); days != 3 {
		t.Fatalf("LeaveDays = %d, want 3", days)
	}
}

func TestParseLeaveMalformed(t *testing.T) {
	cases := []string{
		"leave tomorrow",
		"leave 2025-07-20 vacation",
		"leave 2025-07-20 to vacation",
		"I want to leave",
	}

	for _, input := range cases {
		got := ParseCommand(input)
		if got.Kind != model.CommandLeave {
			t.Errorf("ParseCommand(%q).Kind = %q, want %q", input, got.Kind, model.CommandLeave)
			continue
		}
		if !got.LeaveMalformed {
			t.Errorf("ParseCommand(%q).LeaveMalformed = false, want true", input)
		}
	}
}

// 日期倒序由处理方拒绝，解析层只负责提取
func TestParseLeaveReversedDates(t *testing.T) {
	got := ParseCommand("leave 2025-07-22 to 2025-07-20 x")

	if got.LeaveMalformed {
		t.Fatal("LeaveMalformed = true, want false")
	}
	if !got.LeaveTo.Before(got.LeaveFrom) {
		t.Fatal("expected reversed range to surface as LeaveTo before LeaveFrom")
	}
}

// 夏令时切换日只有 23 小时，天数仍按日历日计
func TestLeaveDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	from := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)  // 春季拨快当日
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	if days := LeaveDays(from, to); days != 2 {
		t.Fatalf("LeaveDays = %d, want 2", days)
	}

	// 秋季拨慢当日 25 小时，同样不多算
	from = time.Date(2025, 11, 2, 0, 0, 0, 0, loc)
	to = time.Date(2025, 11, 3, 0, 0, 0, 0, loc)
	if days := LeaveDays(from, to); days != 2 {
		t.Fatalf("LeaveDays = %d, want 2", days)
	}
}

func TestParseLeaveSingleDay(t *testing.T) {
	got := ParseCommand("leave 2025-07-20 to 2025-07-20 medical appointment")

	if got.LeaveMalformed {
		t.Fatal("LeaveMalformed = true, want false")
	}
	if days := LeaveDays(got.LeaveFrom, got.LeaveTo); days != 1 {
		t.Fatalf("LeaveDays = %d, want 1", days)
	}
}
