package whatsapp

import (
	"sync"
	"time"
)

// Direction 通知日志条目方向
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionError    Direction = "error"
	DirectionDemo     Direction = "demo"
)

// LogEntry 一条通知日志
type LogEntry struct {
	Direction    Direction `json:"direction"`
	To           string    `json:"to"`
	From         string    `json:"from"`
	Text         string    `json:"text"`
	SentAt       time.Time `json:"sent_at"`
	Status       string    `json:"status"`
	MessageID    string    `json:"message_id,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Log 通知日志环形缓冲，最新在前，超出上限时淘汰最旧的条目。
// 仅用于排查与 demo 展示，不是正确性攸关的存储。
type Log struct {
	mu      sync.Mutex
	max     int
	entries []LogEntry
}

func NewLog(max int) *Log {
	if max <= 0 {
		max = 100
	}
	return &Log{max: max}
}

// Append 追加一条日志，并发调用安全（写入被互斥锁串行化）
func (l *Log) Append(e LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) < l.max {
		l.entries = append(l.entries, LogEntry{})
	}
	copy(l.entries[1:], l.entries)
	l.entries[0] = e
}

// Entries 返回当前日志的副本，最新在前
func (l *Log) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
