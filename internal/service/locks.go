package service

import (
	"fmt"
	"sync"
	"time"

	"AttendBot/utils"
)

// dayLocks 以 (员工, 日历日) 为粒度的互斥锁，
// 保证同一员工同一天的查询-建档序列不被并发的重复消息打断。
// 不同员工互不阻塞。
type dayLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDayLocks() *dayLocks {
	return &dayLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire 锁住指定员工当日的临界区，返回解锁函数
func (l *dayLocks) acquire(employeeID int64, date time.Time) func() {
	key := fmt.Sprintf("%d:%s", employeeID, utils.DateOf(date).Format("2006-01-02"))

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
