package utils

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 15, 45, 12, 0, time.UTC)

	got, err := ParseTimeOfDay("09:00:00", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// 空串返回原日期
	got, err = ParseTimeOfDay("", date)
	if err != nil || !got.Equal(date) {
		t.Fatalf("empty time string: got %v, err %v", got, err)
	}

	if _, err := ParseTimeOfDay("9am", date); err == nil {
		t.Fatal("expected error for invalid time string")
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("17:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != 17 || m != 30 {
		t.Fatalf("got %d:%d, want 17:30", h, m)
	}

	if _, _, err := ParseClock("25:00"); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}

func TestDateOf(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	ts := time.Date(2026, 3, 2, 23, 59, 59, 0, loc)

	day := DateOf(ts)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Fatalf("DateOf did not truncate to midnight: %v", day)
	}
	if day.Location() != loc {
		t.Fatal("DateOf must preserve the location")
	}
	if day.Day() != 2 {
		t.Fatalf("DateOf changed the calendar day: %v", day)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{3*time.Hour + 25*time.Minute, "3h 25m"},
		{45 * time.Minute, "45m"},
		{0, "0m"},
		{-5 * time.Minute, "0m"},
		{8 * time.Hour, "8h 0m"},
	}
	for _, c := range cases {
		if got := FormatElapsed(c.d); got != c.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{8.5, 8.5},
		{8.505, 8.51},
		{8.504, 8.5},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
