package analysis

import "time"

const (
	DateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// FirstOfMonth returns midnight UTC on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month after t.
func NextMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, 1, 0)
}

// MonthsBack returns the first day of the month n months before t.
// Day one never overflows, so AddDate is exact here.
func MonthsBack(t time.Time, n int) time.Time {
	return FirstOfMonth(t).AddDate(0, -n, 0)
}

// dateOnly drops the clock so day arithmetic is exact.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
