package service

import (
	"context"
	"time"

	"AttendBot/config"
	"AttendBot/internal/model"
	"AttendBot/internal/repository"
	"AttendBot/utils"
)

// DailySummary 单日考勤统计
type DailySummary struct {
	Date           time.Time
	TotalEmployees int
	Present        int
	Absent         int
	Late           int
}

// WeeklyReport 周一到周五窗口的全员统计
type WeeklyReport struct {
	From           time.Time
	To             time.Time
	TotalEmployees int
	PresentDays    int
	PossibleDays   int
	TotalHours     float64
}

// EmployeeWeekly 单人一周统计
type EmployeeWeekly struct {
	Employee    *model.Employee
	PresentDays int
	TotalHours  float64
}

// Reporter 汇总统计，只读台账
type Reporter struct {
	directory  repository.EmployeeDirectory
	attendance repository.AttendanceStore
}

func NewReporter(directory repository.EmployeeDirectory, attendance repository.AttendanceStore) *Reporter {
	return &Reporter{directory: directory, attendance: attendance}
}

// DailySummary 统计指定日期的出勤、缺勤与迟到人数。
// 迟到阈值来自配置，默认为当日 09:00:00。
func (r *Reporter) DailySummary(ctx context.Context, date time.Time) (*DailySummary, error) {
	employees, err := r.directory.ListActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}

	records, err := r.attendance.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	lateAfter, err := utils.ParseTimeOfDay(config.Cfg.LateThreshold, utils.DateOf(date))
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date:           utils.DateOf(date),
		TotalEmployees: len(employees),
	}
	for _, rec := range records {
		summary.Present++
		if rec.CheckIn.After(lateAfter) {
			summary.Late++
		}
	}
	summary.Absent = summary.TotalEmployees - summary.Present
	if summary.Absent < 0 {
		summary.Absent = 0
	}

	return summary, nil
}

// WeekWindow 返回 ref 所在周的周一和周五（当地日历日）
func WeekWindow(ref time.Time) (monday, friday time.Time) {
	day := utils.DateOf(ref)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // 周日归入上一个工作周
	}
	monday = day.AddDate(0, 0, -offset)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}

// WeeklyReport 统计 ref 所在周（周一至周五）的全员出勤
func (r *Reporter) WeeklyReport(ctx context.Context, ref time.Time) (*WeeklyReport, []*EmployeeWeekly, error) {
	employees, err := r.directory.ListActiveEmployees(ctx)
	if err != nil {
		return nil, nil, err
	}

	monday, friday := WeekWindow(ref)
	records, err := r.attendance.ListByDateRange(ctx, monday, friday)
	if err != nil {
		return nil, nil, err
	}

	perEmployee := make(map[int64]*EmployeeWeekly, len(employees))
	for _, emp := range employees {
		perEmployee[emp.ID] = &EmployeeWeekly{Employee: emp}
	}

	report := &WeeklyReport{
		From:           monday,
		To:             friday,
		TotalEmployees: len(employees),
		PossibleDays:   len(employees) * 5,
	}
	for _, rec := range records {
		report.PresentDays++
		if rec.TotalHours != nil {
			report.TotalHours = utils.Round2(report.TotalHours + *rec.TotalHours)
		}

		ew, ok := perEmployee[rec.EmployeeID]
		if !ok {
			continue // 非在职员工的历史记录不计入个人摘要
		}
		ew.PresentDays++
		if rec.TotalHours != nil {
			ew.TotalHours = utils.Round2(ew.TotalHours + *rec.TotalHours)
		}
	}

	weekly := make([]*EmployeeWeekly, 0, len(employees))
	for _, emp := range employees {
		weekly = append(weekly, perEmployee[emp.ID])
	}

	return report, weekly, nil
}
