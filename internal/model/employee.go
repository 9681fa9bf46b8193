package model

import "time"

// EmployeeRole 员工角色枚举
type EmployeeRole string

const (
	EmployeeRoleAdmin    EmployeeRole = "admin"
	EmployeeRoleEmployee EmployeeRole = "employee"
)

// EmployeeStatus 员工状态枚举
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee 员工目录记录。对机器人而言只读，维护发生在人事侧。
type Employee struct {
	BaseModel
	EmployeeID string         `gorm:"uniqueIndex;type:varchar(32);not null" json:"employee_id"`
	FirstName  string         `gorm:"type:varchar(64);not null" json:"first_name"`
	LastName   string         `gorm:"type:varchar(64);not null;default:''" json:"last_name"`
	Phone      string         `gorm:"uniqueIndex;type:varchar(32);not null" json:"phone"`
	Email      string         `gorm:"type:varchar(128);not null;default:''" json:"email"`
	Department string         `gorm:"type:varchar(64);not null;default:''" json:"department"`
	Role       EmployeeRole   `gorm:"type:varchar(16);not null;default:'employee';index:idx_employees_role_status" json:"role"`
	Status     EmployeeStatus `gorm:"type:varchar(16);not null;default:'active';index:idx_employees_role_status" json:"status"`
	HiredAt    *time.Time     `gorm:"type:date" json:"hired_at,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string {
	return "employees"
}

// FullName 姓名展示
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// IsActive 是否在职
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}
