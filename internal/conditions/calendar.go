package conditions

import "time"

const day = 24 * time.Hour

// dateOf returns the calendar date of t in its own location, as midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)) / day)
}

// nthWeekday returns the n-th given weekday of a month, n starting at 1.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

func thanksgiving(year int) time.Time {
	return nthWeekday(year, time.November, time.Thursday, 4)
}

func memorialDay(year int) time.Time {
	return lastWeekday(year, time.May, time.Monday)
}

func laborDay(year int) time.Time {
	return nthWeekday(year, time.September, time.Monday, 1)
}

func mlkDay(year int) time.Time {
	return nthWeekday(year, time.January, time.Monday, 3)
}

func presidentsDay(year int) time.Time {
	return nthWeekday(year, time.February, time.Monday, 3)
}
