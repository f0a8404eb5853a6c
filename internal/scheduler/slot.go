package scheduler

import "time"

// HourWindow returns the one-hour booking window containing t, as the
// half-open interval [start, end). Bookings are slotted at fixed
// one-hour granularity regardless of the requested minute: 09:05 and
// 09:40 both land in the 09:00-10:00 window, while 10:00 starts the
// next one.
func HourWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return start, start.Add(time.Hour)
}
