package scheduler

import (
	"testing"
	"time"
)

func TestHourWindow(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
	}{
		{
			"mid hour",
			time.Date(2026, 3, 14, 9, 5, 30, 999, time.Local),
			time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local),
		},
		{
			"on the hour",
			time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local),
			time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local),
		},
		{
			"last instant of hour",
			time.Date(2026, 3, 14, 9, 59, 59, 999999999, time.Local),
			time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local),
		},
		{
			"just after midnight",
			time.Date(2026, 12, 31, 0, 10, 0, 0, time.Local),
			time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := HourWindow(tt.in)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", start, tt.wantStart)
			}
			if end.Sub(start) != time.Hour {
				t.Errorf("window length: got %v, want 1h", end.Sub(start))
			}
			if start.After(tt.in) || !tt.in.Before(end) {
				t.Errorf("window [%v, %v) does not contain %v", start, end, tt.in)
			}
		})
	}
}

func TestHourWindowAdjacent(t *testing.T) {
	// 09:59 and 10:00 must land in different windows
	a, _ := HourWindow(time.Date(2026, 3, 14, 9, 59, 0, 0, time.Local))
	b, _ := HourWindow(time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local))
	if a.Equal(b) {
		t.Fatal("adjacent hours collapsed into one window")
	}
}
