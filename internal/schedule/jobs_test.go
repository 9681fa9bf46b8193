package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"AttendBot/internal/model"
	"AttendBot/internal/repository"
	"AttendBot/utils"
)

type sendRecorder struct {
	mu    sync.Mutex
	sent  map[string]string // phone -> 最近一条文案
	fails map[string]bool
}

func newSendRecorder() *sendRecorder {
	return &sendRecorder{sent: make(map[string]string), fails: make(map[string]bool)}
}

func (r *sendRecorder) send(ctx context.Context, to, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fails[to] {
		return errors.New("provider unreachable")
	}
	r.sent[to] = text
	return nil
}

func (r *sendRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *sendRecorder) textFor(phone string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[phone]
}

func phoneFor(i int) string {
	return fmt.Sprintf("91900000%04d", i)
}

func newJobsFixture(employeeCount int) (*Jobs, *repository.MemoryDirectory, *repository.MemoryAttendanceStore, *sendRecorder) {
	directory := repository.NewMemoryDirectory()
	for i := 1; i <= employeeCount; i++ {
		emp := &model.Employee{
			EmployeeID: fmt.Sprintf("EMP%03d", i),
			FirstName:  fmt.Sprintf("Emp%d", i),
			Phone:      phoneFor(i),
			Role:       model.EmployeeRoleEmployee,
			Status:     model.EmployeeStatusActive,
		}
		emp.ID = int64(i)
		directory.Add(emp)
	}

	attendance := repository.NewMemoryAttendanceStore()
	recorder := newSendRecorder()
	jobs := NewJobs(directory, attendance, recorder.send, 4)
	return jobs, directory, attendance, recorder
}

func addRecord(t *testing.T, store *repository.MemoryAttendanceStore, employeeID int64, checkIn time.Time, checkedOut bool) {
	t.Helper()
	rec := &model.AttendanceRecord{
		RecordID:   employeeID*1000 + int64(checkIn.YearDay()),
		EmployeeID: employeeID,
		Date:       utils.DateOf(checkIn),
		CheckIn:    checkIn,
		Status:     model.AttendanceStatusPresent,
		Source:     model.SourceWhatsApp,
	}
	if checkedOut {
		out := checkIn.Add(8 * time.Hour)
		hours := 8.0
		rec.CheckOut = &out
		rec.TotalHours = &hours
	}
	if err := store.Create(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
}

// 10 人中 3 人未打卡，提醒恰好发 3 条
func TestDailyCheckInReminderTargets(t *testing.T) {
	jobs, _, attendance, recorder := newJobsFixture(10)

	day := time.Date(2025, 7, 22, 8, 30, 0, 0, time.Local)
	jobs.now = func() time.Time { return day }

	for i := int64(1); i <= 7; i++ {
		addRecord(t, attendance, i, day.Add(15*time.Minute), false)
	}

	if err := jobs.DailyCheckInReminder(context.Background()); err != nil {
		t.Fatal(err)
	}

	if recorder.count() != 3 {
		t.Fatalf("sent = %d, want 3", recorder.count())
	}
	for i := 8; i <= 10; i++ {
		text := recorder.textFor(phoneFor(i))
		if !strings.Contains(text, "mark your attendance") {
			t.Fatalf("employee %d reminder = %q", i, text)
		}
	}
}

func TestCheckoutReminderOnlyOpenRecords(t *testing.T) {
	jobs, _, attendance, recorder := newJobsFixture(3)

	day := time.Date(2025, 7, 22, 17, 30, 0, 0, time.Local)
	jobs.now = func() time.Time { return day }

	addRecord(t, attendance, 1, day.Add(-9*time.Hour), false) // 在岗未下班
	addRecord(t, attendance, 2, day.Add(-9*time.Hour), true)  // 已下班
	// 3 号今天没打卡

	if err := jobs.CheckoutReminder(context.Background()); err != nil {
		t.Fatal(err)
	}

	if recorder.count() != 1 {
		t.Fatalf("sent = %d, want 1", recorder.count())
	}
	if text := recorder.textFor(phoneFor(1)); !strings.Contains(text, "check out") {
		t.Fatalf("reminder = %q", text)
	}
}

func TestAdminDailySummaryDelivery(t *testing.T) {
	jobs, directory, attendance, recorder := newJobsFixture(4)

	admin := &model.Employee{
		EmployeeID: "ADM001",
		FirstName:  "Rahul",
		Phone:      "919000009999",
		Role:       model.EmployeeRoleAdmin,
		Status:     model.EmployeeStatusActive,
	}
	admin.ID = 99
	directory.Add(admin)

	day := time.Date(2025, 7, 22, 18, 0, 0, 0, time.Local)
	jobs.now = func() time.Time { return day }

	addRecord(t, attendance, 1, day.Add(-9*time.Hour), false)
	addRecord(t, attendance, 2, day.Add(-8*time.Hour), false) // 10:00 迟到

	if err := jobs.AdminDailySummary(context.Background()); err != nil {
		t.Fatal(err)
	}

	text := recorder.textFor(admin.Phone)
	if text == "" {
		t.Fatal("admin did not receive summary")
	}
	for _, want := range []string{"Total Employees: 4", "Present: 2", "Absent: 2", "Late Arrivals: 1"} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q: %q", want, text)
		}
	}
}

func TestWeeklyReportDelivery(t *testing.T) {
	jobs, directory, attendance, recorder := newJobsFixture(2)

	admin := &model.Employee{
		EmployeeID: "ADM001",
		FirstName:  "Rahul",
		Phone:      "919000009999",
		Role:       model.EmployeeRoleAdmin,
		Status:     model.EmployeeStatusActive,
	}
	admin.ID = 99
	directory.Add(admin)

	friday := time.Date(2025, 7, 25, 17, 0, 0, 0, time.Local)
	jobs.now = func() time.Time { return friday }

	monday := time.Date(2025, 7, 21, 9, 0, 0, 0, time.Local)
	addRecord(t, attendance, 1, monday, true)
	addRecord(t, attendance, 1, monday.AddDate(0, 0, 1), true)

	if err := jobs.WeeklyReport(context.Background()); err != nil {
		t.Fatal(err)
	}

	if text := recorder.textFor(admin.Phone); !strings.Contains(text, "Weekly Attendance Report") {
		t.Fatalf("admin report = %q", text)
	}
	if text := recorder.textFor(phoneFor(1)); !strings.Contains(text, "Days Present: 2/5") {
		t.Fatalf("employee summary = %q", text)
	}
	if text := recorder.textFor(phoneFor(2)); !strings.Contains(text, "Days Present: 0/5") {
		t.Fatalf("employee summary = %q", text)
	}
}

// 单个收件人失败不中断其余发送，任务结束时汇总报错
func TestFanOutIsolatesFailures(t *testing.T) {
	jobs, _, _, recorder := newJobsFixture(5)

	day := time.Date(2025, 7, 22, 8, 30, 0, 0, time.Local)
	jobs.now = func() time.Time { return day }
	recorder.fails[phoneFor(3)] = true

	err := jobs.DailyCheckInReminder(context.Background())
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	if !strings.Contains(err.Error(), "1 errors") {
		t.Fatalf("err = %v", err)
	}
	if recorder.count() != 4 {
		t.Fatalf("sent = %d, want 4", recorder.count())
	}
}

func TestNoticeBroadcast(t *testing.T) {
	jobs, _, _, recorder := newJobsFixture(3)

	if err := jobs.Notice(context.Background(), "🔧 maintenance tonight"); err != nil {
		t.Fatal(err)
	}
	if recorder.count() != 3 {
		t.Fatalf("sent = %d, want 3", recorder.count())
	}
}
