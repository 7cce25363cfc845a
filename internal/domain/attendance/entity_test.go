package attendance

import (
	"testing"
	"time"
)

func TestDurationMinutesClosed(t *testing.T) {
	punchIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	punchOut := time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)

	rec := Attendance{PunchIn: punchIn, PunchOut: &punchOut}

	// A closed record ignores "now" entirely.
	got := rec.DurationMinutes(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	if got != 510 {
		t.Errorf("DurationMinutes = %d, want 510", got)
	}
	if FormatDuration(got) != "8h 30m" {
		t.Errorf("FormatDuration(%d) = %q, want %q", got, FormatDuration(got), "8h 30m")
	}
}

func TestDurationMinutesOpenUsesNow(t *testing.T) {
	punchIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rec := Attendance{PunchIn: punchIn}

	now := punchIn.Add(95 * time.Minute)
	if got := rec.DurationMinutes(now); got != 95 {
		t.Errorf("DurationMinutes = %d, want 95", got)
	}
	if !rec.Open() {
		t.Error("record without punch-out should be open")
	}
}

func TestDurationMinutesNeverNegative(t *testing.T) {
	punchIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rec := Attendance{PunchIn: punchIn}

	if got := rec.DurationMinutes(punchIn.Add(-time.Hour)); got != 0 {
		t.Errorf("DurationMinutes = %d, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{510, "8h 30m"},
		{-5, "0h 0m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}
