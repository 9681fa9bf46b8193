package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestLogNewestFirst(t *testing.T) {
	l := NewLog(10)

	l.Append(LogEntry{Text: "first"})
	l.Append(LogEntry{Text: "second"})
	l.Append(LogEntry{Text: "third"})

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Text != "third" || entries[2].Text != "first" {
		t.Fatalf("entries not newest-first: %q, %q, %q",
			entries[0].Text, entries[1].Text, entries[2].Text)
	}
}

func TestLogEvictsOldest(t *testing.T) {
	l := NewLog(100)

	for i := 0; i < 101; i++ {
		l.Append(LogEntry{Text: fmt.Sprintf("msg-%d", i)})
	}

	if l.Len() != 100 {
		t.Fatalf("expected 100 entries after overflow, got %d", l.Len())
	}

	entries := l.Entries()
	if entries[0].Text != "msg-100" {
		t.Fatalf("newest entry = %q, want msg-100", entries[0].Text)
	}
	if entries[99].Text != "msg-1" {
		t.Fatalf("oldest retained entry = %q, want msg-1", entries[99].Text)
	}
	for _, e := range entries {
		if e.Text == "msg-0" {
			t.Fatal("oldest entry msg-0 should have been evicted")
		}
	}
}

func TestLogClear(t *testing.T) {
	l := NewLog(10)
	l.Append(LogEntry{Text: "one"})
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("expected empty log after Clear, got %d entries", l.Len())
	}
}

func TestLogEntriesReturnsCopy(t *testing.T) {
	l := NewLog(10)
	l.Append(LogEntry{Text: "original"})

	entries := l.Entries()
	entries[0].Text = "mutated"

	if l.Entries()[0].Text != "original" {
		t.Fatal("Entries must return a copy, not the backing slice")
	}
}

func TestDemoClientAlwaysDelivers(t *testing.T) {
	client := NewDemoClient()

	res, err := client.Send(context.Background(), "14155550100", "hello")
	if err != nil {
		t.Fatalf("demo send returned error: %v", err)
	}
	if !res.Delivered {
		t.Fatal("demo send should always report delivered")
	}
	if !res.Demo {
		t.Fatal("demo send result should be flagged as demo")
	}
	if !strings.HasPrefix(res.MessageID, "demo-") {
		t.Fatalf("demo message id = %q, want demo- prefix", res.MessageID)
	}
}
