package booking

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date (UTC midnight)
// =============================================================================

// Date is a calendar date with no time-of-day component. The zero value is
// the zero time and reports IsZero.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseISODate parses a canonical YYYY-MM-DD string.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) Time() time.Time   { return d.t }

// String returns the canonical ISO form, YYYY-MM-DD.
func (d Date) String() string { return d.t.Format("2006-01-02") }

// ToISODate is the explicit ISO formatter; identical to String.
func ToISODate(d Date) string { return d.String() }

// =============================================================================
// CALENDAR UTILITIES - Pure day-counting helpers
// =============================================================================

// DaysInMonth returns the number of days in the given month, respecting
// leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if DaysInMonth(year, time.February) == 29 {
		return 366
	}
	return 365
}

// FirstWeekdayOfMonth returns the native weekday of the 1st of the month
// (Sunday = 0). Use MondayIndex for Monday-first calendar grids.
func FirstWeekdayOfMonth(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// MondayIndex converts a native weekday to a Monday-first index
// (Monday = 0 .. Sunday = 6).
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// IsPastDate reports whether d is strictly earlier than the current
// calendar day.
func IsPastDate(d Date) bool {
	return IsPastDateAt(d, time.Now())
}

// IsPastDateAt is IsPastDate against an explicit clock, for testing.
func IsPastDateAt(d Date, now time.Time) bool {
	return d.Before(DateOf(now))
}

// NightsBetween returns the number of nights between two dates. The
// difference is taken as an absolute value, so a reversed start/end still
// yields a positive count; callers must validate ordering upstream.
func NightsBetween(start, end Date) int {
	hours := end.t.Sub(start.t).Hours()
	if hours < 0 {
		hours = -hours
	}
	return int(hours / 24)
}

// StartOfYear and EndOfYear bound a calendar year, both inclusive.
func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }
