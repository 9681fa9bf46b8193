package model

import "time"

// LeaveStatus 请假状态枚举
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRecord 请假申请。机器人只会以 pending 创建；
// approved/rejected 由外部审批流程写入，并触发一条通知。
type LeaveRecord struct {
	BaseModel
	LeaveID    int64       `gorm:"uniqueIndex;not null" json:"leave_id"`
	EmployeeID int64       `gorm:"not null;index:idx_leaves_employee" json:"employee_id"`
	FromDate   time.Time   `gorm:"type:date;not null" json:"from_date"`
	ToDate     time.Time   `gorm:"type:date;not null" json:"to_date"`
	Reason     string      `gorm:"type:varchar(255);not null" json:"reason"`
	Status     LeaveStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_leaves_status" json:"status"`
	AppliedAt  time.Time   `gorm:"type:timestamptz;not null" json:"applied_at"`
	TotalDays  int         `gorm:"not null" json:"total_days"`
	Source     string      `gorm:"type:varchar(16);not null;default:'whatsapp'" json:"source"`
	DecidedBy  string      `gorm:"type:varchar(64);not null;default:''" json:"decided_by"`
	Comments   string      `gorm:"type:varchar(255);not null;default:''" json:"comments"`
}

// TableName 指定表名
func (LeaveRecord) TableName() string {
	return "leave_records"
}
