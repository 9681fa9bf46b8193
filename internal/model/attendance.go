package model

import "time"

// AttendanceStatus 考勤状态枚举
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
)

// RecordSource 记录来源
const (
	SourceWhatsApp = "whatsapp"
)

// AttendanceRecord 单人单日考勤记录。
// (EmployeeID, Date) 唯一；CheckOut 与 TotalHours 只会被一起写入一次。
type AttendanceRecord struct {
	BaseModel
	RecordID   int64            `gorm:"uniqueIndex;not null" json:"record_id"`
	EmployeeID int64            `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date       time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date;index:idx_attendance_date" json:"date"`
	CheckIn    time.Time        `gorm:"type:timestamptz;not null" json:"check_in"`
	CheckOut   *time.Time       `gorm:"type:timestamptz" json:"check_out,omitempty"`
	TotalHours *float64         `json:"total_hours,omitempty"`
	Status     AttendanceStatus `gorm:"type:varchar(16);not null;default:'present'" json:"status"`
	Source     string           `gorm:"type:varchar(16);not null;default:'whatsapp'" json:"source"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// CheckedOut 是否已完成当日下班打卡
func (r *AttendanceRecord) CheckedOut() bool {
	return r.CheckOut != nil
}
