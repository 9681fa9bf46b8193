package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"AttendBot/internal/model"
	"AttendBot/internal/repository"
)

func newTestBot(employees ...*model.Employee) (*Bot, *repository.MemoryAttendanceStore, *repository.MemoryLeaveStore) {
	attendance := repository.NewMemoryAttendanceStore()
	leaves := repository.NewMemoryLeaveStore()
	bot := NewBot(repository.NewMemoryDirectory(employees...), attendance, leaves)

	var seq int64
	bot.newID = func() (int64, error) {
		return atomic.AddInt64(&seq, 1), nil
	}
	return bot, attendance, leaves
}

func testEmployee() *model.Employee {
	emp := &model.Employee{
		EmployeeID: "EMP001",
		FirstName:  "Priya",
		LastName:   "Sharma",
		Phone:      "919876543210",
		Department: "Engineering",
		Role:       model.EmployeeRoleEmployee,
		Status:     model.EmployeeStatusActive,
	}
	emp.ID = 1
	return emp
}

func inbound(from, body string) model.InboundMessage {
	return model.InboundMessage{From: from, Body: body, Timestamp: time.Now().Unix(), MessageID: "wamid.test"}
}

func TestHandleMessageUnregistered(t *testing.T) {
	bot, attendance, _ := newTestBot(testEmployee())

	out := bot.HandleMessage(context.Background(), inbound("000000", "checkin"))

	if out.To != "000000" {
		t.Fatalf("To = %q, want %q", out.To, "000000")
	}
	if out.Text != NotRegisteredText() {
		t.Fatalf("Text = %q, want not-registered response", out.Text)
	}
	recs, _ := attendance.ListByDate(context.Background(), time.Now())
	if len(recs) != 0 {
		t.Fatalf("ledger mutated for unregistered sender: %d records", len(recs))
	}
}

func TestCheckInCreatesSingleRecord(t *testing.T) {
	emp := testEmployee()
	bot, attendance, _ := newTestBot(emp)

	checkInAt := time.Date(2025, 7, 22, 8, 45, 0, 0, time.Local)
	bot.now = func() time.Time { return checkInAt }

	out := bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkin"))
	if !strings.Contains(out.Text, "Check-in Successful") {
		t.Fatalf("first check-in response = %q", out.Text)
	}
	if !strings.Contains(out.Text, "Priya Sharma") || !strings.Contains(out.Text, "Engineering") {
		t.Fatalf("response missing employee details: %q", out.Text)
	}

	rec, err := attendance.FindByEmployeeAndDate(context.Background(), emp.ID, checkInAt)
	if err != nil {
		t.Fatalf("record not created: %v", err)
	}
	if !rec.CheckIn.Equal(checkInAt) {
		t.Fatalf("CheckIn = %v, want %v", rec.CheckIn, checkInAt)
	}
	if rec.Status != model.AttendanceStatusPresent || rec.Source != model.SourceWhatsApp {
		t.Fatalf("record status/source = %q/%q", rec.Status, rec.Source)
	}

	// 重复打卡是幂等空操作
	out = bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkin"))
	if !strings.Contains(out.Text, "already checked in") {
		t.Fatalf("second check-in response = %q", out.Text)
	}
	recs, _ := attendance.ListByDate(context.Background(), checkInAt)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
}

func TestCheckOutBeforeCheckIn(t *testing.T) {
	emp := testEmployee()
	bot, _, _ := newTestBot(emp)

	out := bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkout"))
	if out.Text != CheckInFirstText() {
		t.Fatalf("Text = %q, want check-in-first response", out.Text)
	}
}

func TestCheckOutComputesHours(t *testing.T) {
	emp := testEmployee()
	bot, attendance, _ := newTestBot(emp)

	checkInAt := time.Date(2025, 7, 22, 9, 0, 0, 0, time.Local)
	bot.now = func() time.Time { return checkInAt }
	bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkin"))

	checkOutAt := time.Date(2025, 7, 22, 17, 30, 0, 0, time.Local)
	bot.now = func() time.Time { return checkOutAt }
	out := bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkout"))

	if !strings.Contains(out.Text, "Check-out Successful") {
		t.Fatalf("check-out response = %q", out.Text)
	}
	if !strings.Contains(out.Text, "8.50") {
		t.Fatalf("response missing total hours: %q", out.Text)
	}

	rec, err := attendance.FindByEmployeeAndDate(context.Background(), emp.ID, checkOutAt)
	if err != nil {
		t.Fatal(err)
	}
	if rec.CheckOut == nil || !rec.CheckOut.Equal(checkOutAt) {
		t.Fatalf("CheckOut = %v, want %v", rec.CheckOut, checkOutAt)
	}
	if rec.TotalHours == nil || *rec.TotalHours != 8.5 {
		t.Fatalf("TotalHours = %v, want 8.5", rec.TotalHours)
	}

	// 第二次下班打卡不再改动台账
	out = bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkout"))
	if !strings.Contains(out.Text, "already checked out") {
		t.Fatalf("second check-out response = %q", out.Text)
	}
}

func TestStatusBranches(t *testing.T) {
	emp := testEmployee()
	bot, _, _ := newTestBot(emp)
	ctx := context.Background()

	base := time.Date(2025, 7, 22, 8, 0, 0, 0, time.Local)
	bot.now = func() time.Time { return base }

	out := bot.HandleMessage(ctx, inbound(emp.Phone, "status"))
	if !strings.Contains(out.Text, "Not checked in yet") {
		t.Fatalf("status before check-in = %q", out.Text)
	}

	bot.HandleMessage(ctx, inbound(emp.Phone, "checkin"))

	bot.now = func() time.Time { return base.Add(3*time.Hour + 25*time.Minute) }
	out = bot.HandleMessage(ctx, inbound(emp.Phone, "status"))
	if !strings.Contains(out.Text, "Currently checked in") {
		t.Fatalf("status while checked in = %q", out.Text)
	}
	if !strings.Contains(out.Text, "3h 25m") {
		t.Fatalf("status missing elapsed duration: %q", out.Text)
	}

	bot.HandleMessage(ctx, inbound(emp.Phone, "checkout"))
	out = bot.HandleMessage(ctx, inbound(emp.Phone, "status"))
	if !strings.Contains(out.Text, "Completed for today") {
		t.Fatalf("status after check-out = %q", out.Text)
	}
}

func TestLeaveRequestLifecycle(t *testing.T) {
	emp := testEmployee()
	bot, _, leaves := newTestBot(emp)
	ctx := context.Background()

	out := bot.HandleMessage(ctx, inbound(emp.Phone, "leave 2025-07-20 to 2025-07-22 family vacation"))
	if !strings.Contains(out.Text, "Leave Request Submitted") {
		t.Fatalf("leave response = %q", out.Text)
	}
	if !strings.Contains(out.Text, "Days: 3") {
		t.Fatalf("response missing day count: %q", out.Text)
	}

	all := leaves.All()
	if len(all) != 1 {
		t.Fatalf("leave records = %d, want 1", len(all))
	}
	rec := all[0]
	if rec.Status != model.LeaveStatusPending {
		t.Fatalf("Status = %q, want pending", rec.Status)
	}
	if rec.TotalDays != 3 || rec.Reason != "family vacation" {
		t.Fatalf("TotalDays/Reason = %d/%q", rec.TotalDays, rec.Reason)
	}
}

func TestLeaveMalformedGetsFormatHelp(t *testing.T) {
	emp := testEmployee()
	bot, _, leaves := newTestBot(emp)

	out := bot.HandleMessage(context.Background(), inbound(emp.Phone, "leave tomorrow please"))
	if out.Text != LeaveFormatHelpText() {
		t.Fatalf("Text = %q, want format help", out.Text)
	}
	if len(leaves.All()) != 0 {
		t.Fatal("malformed leave request must not create a record")
	}
}

func TestLeaveReversedRangeRejected(t *testing.T) {
	emp := testEmployee()
	bot, _, leaves := newTestBot(emp)

	out := bot.HandleMessage(context.Background(), inbound(emp.Phone, "leave 2025-07-22 to 2025-07-20 x"))
	if !strings.Contains(out.Text, "Invalid Leave Dates") {
		t.Fatalf("Text = %q, want invalid-range response", out.Text)
	}
	if len(leaves.All()) != 0 {
		t.Fatal("reversed range must not create a record")
	}
}

func TestUnknownCommand(t *testing.T) {
	emp := testEmployee()
	bot, _, _ := newTestBot(emp)

	out := bot.HandleMessage(context.Background(), inbound(emp.Phone, "good morning bot"))
	if out.Text != UnknownCommandText() {
		t.Fatalf("Text = %q, want unknown-command response", out.Text)
	}
}

// 近乎同时到达的重复打卡消息只能产生一条记录
func TestConcurrentDuplicateCheckIn(t *testing.T) {
	emp := testEmployee()
	bot, attendance, _ := newTestBot(emp)

	at := time.Date(2025, 7, 22, 8, 45, 0, 0, time.Local)
	bot.now = func() time.Time { return at }

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.HandleMessage(context.Background(), inbound(emp.Phone, "checkin"))
		}()
	}
	wg.Wait()

	recs, _ := attendance.ListByDate(context.Background(), at)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want exactly 1", len(recs))
	}
}
