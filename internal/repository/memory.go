package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"AttendBot/internal/model"
	"AttendBot/utils"
)

// 内存实现，用于测试和无数据库的本地联调。语义与 Gorm 实现一致。

// MemoryDirectory 内存员工目录
type MemoryDirectory struct {
	mu        sync.RWMutex
	employees []*model.Employee
}

func NewMemoryDirectory(employees ...*model.Employee) *MemoryDirectory {
	return &MemoryDirectory{employees: employees}
}

func (d *MemoryDirectory) Add(emp *model.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees = append(d.employees, emp)
}

func (d *MemoryDirectory) FindByPhone(ctx context.Context, phone string) (*model.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.employees {
		if e.Phone == phone {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (d *MemoryDirectory) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (d *MemoryDirectory) ListActiveEmployees(ctx context.Context) ([]*model.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []*model.Employee
	for _, e := range d.employees {
		if e.Role == model.EmployeeRoleEmployee && e.Status == model.EmployeeStatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (d *MemoryDirectory) ListAdmins(ctx context.Context) ([]*model.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []*model.Employee
	for _, e := range d.employees {
		if e.Role == model.EmployeeRoleAdmin {
			out = append(out, e)
		}
	}
	return out, nil
}

// MemoryAttendanceStore 内存考勤台账
type MemoryAttendanceStore struct {
	mu      sync.RWMutex
	records map[string]*model.AttendanceRecord // key: employeeID + date
}

func NewMemoryAttendanceStore() *MemoryAttendanceStore {
	return &MemoryAttendanceStore{records: make(map[string]*model.AttendanceRecord)}
}

func attendanceKey(employeeID int64, date time.Time) string {
	return utils.DateOf(date).Format("2006-01-02") + "/" + strconv.FormatInt(employeeID, 10)
}

func (s *MemoryAttendanceStore) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[attendanceKey(employeeID, date)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryAttendanceStore) Create(ctx context.Context, record *model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := attendanceKey(record.EmployeeID, record.Date)
	if _, ok := s.records[key]; ok {
		return ErrConflict
	}
	cp := *record
	s.records[key] = &cp
	return nil
}

func (s *MemoryAttendanceStore) SetCheckOut(ctx context.Context, recordID int64, checkOut time.Time, totalHours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.RecordID == recordID {
			if rec.CheckOut != nil {
				return ErrNotFound
			}
			co := checkOut
			th := totalHours
			rec.CheckOut = &co
			rec.TotalHours = &th
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryAttendanceStore) ListByDate(ctx context.Context, date time.Time) ([]*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := utils.DateOf(date)
	var out []*model.AttendanceRecord
	for _, rec := range s.records {
		if utils.DateOf(rec.Date).Equal(day) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryAttendanceStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lo, hi := utils.DateOf(from), utils.DateOf(to)
	var out []*model.AttendanceRecord
	for _, rec := range s.records {
		day := utils.DateOf(rec.Date)
		if !day.Before(lo) && !day.After(hi) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MemoryLeaveStore 内存请假台账
type MemoryLeaveStore struct {
	mu      sync.RWMutex
	records []*model.LeaveRecord
}

func NewMemoryLeaveStore() *MemoryLeaveStore {
	return &MemoryLeaveStore{}
}

func (s *MemoryLeaveStore) Create(ctx context.Context, record *model.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

func (s *MemoryLeaveStore) FindByLeaveID(ctx context.Context, leaveID int64) (*model.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.LeaveID == leaveID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryLeaveStore) SetStatus(ctx context.Context, leaveID int64, status model.LeaveStatus, decidedBy, comments string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.LeaveID == leaveID {
			rec.Status = status
			rec.DecidedBy = decidedBy
			rec.Comments = comments
			return nil
		}
	}
	return ErrNotFound
}

// All 返回全部请假记录（测试用）
func (s *MemoryLeaveStore) All() []*model.LeaveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.LeaveRecord, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out
}
