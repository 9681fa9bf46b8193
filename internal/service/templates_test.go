package service

import (
	"strings"
	"testing"
	"time"
)

func TestAdminDailySummaryTextFullAttendance(t *testing.T) {
	day := time.Date(2025, 7, 22, 0, 0, 0, 0, time.Local)

	text := AdminDailySummaryText(day, 5, 5, 0, 0)
	if !strings.Contains(text, "100%") || !strings.Contains(text, "100% attendance today") {
		t.Fatalf("full attendance summary = %q", text)
	}

	text = AdminDailySummaryText(day, 5, 3, 2, 1)
	if !strings.Contains(text, "60%") {
		t.Fatalf("summary missing rounded rate: %q", text)
	}
	if !strings.Contains(text, "Review absent employees") {
		t.Fatalf("summary missing review hint: %q", text)
	}
}

func TestWeeklySummaryTextPerfectAttendance(t *testing.T) {
	text := WeeklySummaryText("Priya Sharma", 5, 5, 40)
	if !strings.Contains(text, "Perfect attendance this week") {
		t.Fatalf("perfect week summary = %q", text)
	}

	text = WeeklySummaryText("Priya Sharma", 3, 5, 24)
	if !strings.Contains(text, "Keep up the good work") {
		t.Fatalf("partial week summary = %q", text)
	}
}

func TestLeaveDecisionTextsIncludeComments(t *testing.T) {
	from := time.Date(2025, 7, 20, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 7, 22, 0, 0, 0, 0, time.Local)

	text := LeaveApprovedText("Priya", from, to, "Rahul", "")
	if strings.Contains(text, "Comments:") {
		t.Fatalf("approved text without comments should omit comments line: %q", text)
	}

	text = LeaveRejectedText("Priya", from, to, "Rahul", "project deadline")
	if !strings.Contains(text, "project deadline") {
		t.Fatalf("rejected text missing reason: %q", text)
	}
}

func TestPercentageZeroDenominator(t *testing.T) {
	if got := percentage(3, 0); got != 0 {
		t.Fatalf("percentage(3, 0) = %d, want 0", got)
	}
	if got := percentage(2, 3); got != 67 {
		t.Fatalf("percentage(2, 3) = %d, want 67", got)
	}
}
