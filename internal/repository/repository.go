package repository

import (
	"context"
	"errors"
	"time"

	"AttendBot/internal/model"
)

// 核心不感知具体存储技术，只依赖注入的仓储接口与按键原子写语义。

var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrConflict 唯一约束冲突（同一员工同一天重复建档等）
	ErrConflict = errors.New("record already exists")
)

// EmployeeDirectory 员工目录，机器人侧只读
type EmployeeDirectory interface {
	FindByPhone(ctx context.Context, phone string) (*model.Employee, error)
	FindByID(ctx context.Context, id int64) (*model.Employee, error)
	// ListActiveEmployees 返回 role=employee 且 status=active 的员工
	ListActiveEmployees(ctx context.Context) ([]*model.Employee, error)
	// ListAdmins 返回 role=admin 的员工
	ListAdmins(ctx context.Context) ([]*model.Employee, error)
}

// AttendanceStore 考勤台账
type AttendanceStore interface {
	FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*model.AttendanceRecord, error)
	// Create 新建当日记录；(employeeID, date) 已存在时返回 ErrConflict
	Create(ctx context.Context, record *model.AttendanceRecord) error
	// SetCheckOut 一次性写入下班时间与总工时，单条原子更新
	SetCheckOut(ctx context.Context, recordID int64, checkOut time.Time, totalHours float64) error
	ListByDate(ctx context.Context, date time.Time) ([]*model.AttendanceRecord, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.AttendanceRecord, error)
}

// LeaveStore 请假台账
type LeaveStore interface {
	Create(ctx context.Context, record *model.LeaveRecord) error
	FindByLeaveID(ctx context.Context, leaveID int64) (*model.LeaveRecord, error)
	// SetStatus 写入审批结果，单条原子更新
	SetStatus(ctx context.Context, leaveID int64, status model.LeaveStatus, decidedBy, comments string) error
}
