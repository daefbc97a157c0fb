package timeutil

import (
	"testing"
	"time"
)

func TestDayBoundariesCrossUTCMidnight(t *testing.T) {
	// 20:00 UTC is 01:30 IST the next day; day bucketing must follow IST.
	utcEvening := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)

	start := StartOfDay(utcEvening)
	if start.Year() != 2026 || start.Month() != time.August || start.Day() != 31 {
		t.Errorf("start of day = %v, want 31 Aug IST", start)
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("start of day not at midnight: %v", start)
	}

	end := EndOfDay(utcEvening)
	if end.Day() != 31 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end of day = %v", end)
	}
	if !end.After(start) {
		t.Error("end of day must follow start of day")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC) // 00:30 IST 31 Aug
	b := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) // 15:30 IST 31 Aug
	c := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) // 17:30 IST 30 Aug

	if !SameDay(a, b) {
		t.Errorf("%v and %v fall on the same IST day", a, b)
	}
	if SameDay(a, c) {
		t.Errorf("%v and %v fall on different IST days", a, c)
	}
}

func TestDayKey(t *testing.T) {
	at := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)
	if got := DayKey(at); got != "2026-08-31" {
		t.Errorf("DayKey = %q, want 2026-08-31", got)
	}
}
