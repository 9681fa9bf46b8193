package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"AttendBot/internal/model"
	"AttendBot/utils"
)

// GormDirectory 基于 PostgreSQL 的员工目录实现
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) FindByPhone(ctx context.Context, phone string) (*model.Employee, error) {
	var emp model.Employee
	err := d.db.WithContext(ctx).Where("phone = ?", phone).First(&emp).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return &emp, nil
}

func (d *GormDirectory) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	var emp model.Employee
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return &emp, nil
}

func (d *GormDirectory) ListActiveEmployees(ctx context.Context) ([]*model.Employee, error) {
	var emps []*model.Employee
	err := d.db.WithContext(ctx).
		Where("role = ?", model.EmployeeRoleEmployee).
		Where("status = ?", model.EmployeeStatusActive).
		Find(&emps).Error
	return emps, err
}

func (d *GormDirectory) ListAdmins(ctx context.Context) ([]*model.Employee, error) {
	var emps []*model.Employee
	err := d.db.WithContext(ctx).
		Where("role = ?", model.EmployeeRoleAdmin).
		Find(&emps).Error
	return emps, err
}

// GormAttendanceStore 基于 PostgreSQL 的考勤台账实现。
// 数据库层的 (employee_id, date) 唯一索引兜底并发下的重复建档。
type GormAttendanceStore struct {
	db *gorm.DB
}

func NewGormAttendanceStore(db *gorm.DB) *GormAttendanceStore {
	return &GormAttendanceStore{db: db}
}

func (s *GormAttendanceStore) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", utils.DateOf(date)).
		First(&rec).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return &rec, nil
}

func (s *GormAttendanceStore) Create(ctx context.Context, record *model.AttendanceRecord) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (s *GormAttendanceStore) SetCheckOut(ctx context.Context, recordID int64, checkOut time.Time, totalHours float64) error {
	res := s.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("record_id = ?", recordID).
		Where("check_out IS NULL").
		Updates(map[string]interface{}{
			"check_out":   checkOut,
			"total_hours": totalHours,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormAttendanceStore) ListByDate(ctx context.Context, date time.Time) ([]*model.AttendanceRecord, error) {
	var recs []*model.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("date = ?", utils.DateOf(date)).
		Find(&recs).Error
	return recs, err
}

func (s *GormAttendanceStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.AttendanceRecord, error) {
	var recs []*model.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("date >= ?", utils.DateOf(from)).
		Where("date <= ?", utils.DateOf(to)).
		Find(&recs).Error
	return recs, err
}

// GormLeaveStore 基于 PostgreSQL 的请假台账实现
type GormLeaveStore struct {
	db *gorm.DB
}

func NewGormLeaveStore(db *gorm.DB) *GormLeaveStore {
	return &GormLeaveStore{db: db}
}

func (s *GormLeaveStore) Create(ctx context.Context, record *model.LeaveRecord) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (s *GormLeaveStore) FindByLeaveID(ctx context.Context, leaveID int64) (*model.LeaveRecord, error) {
	var rec model.LeaveRecord
	err := s.db.WithContext(ctx).Where("leave_id = ?", leaveID).First(&rec).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return &rec, nil
}

func (s *GormLeaveStore) SetStatus(ctx context.Context, leaveID int64, status model.LeaveStatus, decidedBy, comments string) error {
	res := s.db.WithContext(ctx).
		Model(&model.LeaveRecord{}).
		Where("leave_id = ?", leaveID).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"comments":   comments,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
