/*
availability.go - Per-day availability and overlap conflict detection

PURPOSE:
  Derives the per-day status sequence for a calendar year from a set of
  reservations, and decides whether a candidate date range may be accepted.
  This is the invariant the engine protects: no two approved reservations
  ever hold overlapping inclusive date ranges.

DAY STATUS PRECEDENCE (highest wins):
  occupied   any approved reservation covers the day
  pending    any pending reservation covers the day, unless occupied
  available  default

  Rejected and cancelled reservations contribute no status.

OVERLAP SEMANTICS:
  Ranges are inclusive on both ends, so an approved stay ending June 5 and
  a candidate starting June 5 share a day and therefore conflict. The first
  free start date is June 6.

COMPLEXITY:
  ComputeYearCalendar is O(days x reservations). Fine at the intended scale
  (one property, modest volume); an interval index is not warranted.

SEE ALSO:
  - service.go: Calls HasApprovedConflict at creation time
  - stats.go: Aggregates the same reservation sets
*/
package booking

import "time"

// =============================================================================
// DAY STATUS
// =============================================================================

type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayPending   DayStatus = "pending"
	DayOccupied  DayStatus = "occupied"
)

// CalendarDay is one entry of a year calendar.
type CalendarDay struct {
	Date   Date
	Status DayStatus
}

// =============================================================================
// YEAR CALENDAR
// =============================================================================

// ComputeYearCalendar produces exactly one entry per calendar day of the
// given year, in date order. Each day is evaluated against every
// reservation whose inclusive [Start, End] range covers it.
func ComputeYearCalendar(year int, reservations []Reservation) []CalendarDay {
	days := make([]CalendarDay, 0, DaysInYear(year))
	end := EndOfYear(year)

	for d := StartOfYear(year); !d.After(end); d = d.AddDays(1) {
		status := DayAvailable
		for _, r := range reservations {
			if !r.Covers(d) {
				continue
			}
			switch r.Status {
			case StatusApproved:
				status = DayOccupied
			case StatusPending:
				if status != DayOccupied {
					status = DayPending
				}
			}
			if status == DayOccupied {
				break
			}
		}
		days = append(days, CalendarDay{Date: d, Status: status})
	}
	return days
}

// =============================================================================
// CONFLICT DETECTION
// =============================================================================

// RangesOverlap reports whether two inclusive date ranges share at least
// one day. Symmetric and reflexive: a range overlaps itself.
func RangesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// HasApprovedConflict reports whether any approved reservation in the given
// collection overlaps the candidate range. This is the sole gate for
// accepting a new reservation.
//
// Callers must supply every reservation whose range could intersect the
// candidate; the Service gathers them with Store.ReservationsOverlapping,
// which is not limited by how many year boundaries a stay spans.
func HasApprovedConflict(candStart, candEnd Date, reservations []Reservation) bool {
	_, ok := FindApprovedConflict(candStart, candEnd, reservations)
	return ok
}

// FindApprovedConflict is HasApprovedConflict plus the blocking reservation,
// for error reporting.
func FindApprovedConflict(candStart, candEnd Date, reservations []Reservation) (Reservation, bool) {
	for _, r := range reservations {
		if r.Status != StatusApproved {
			continue
		}
		if RangesOverlap(candStart, candEnd, r.Start, r.End) {
			return r, true
		}
	}
	return Reservation{}, false
}

// =============================================================================
// MONTH GRID - Presentation helper for Monday-first calendar rendering
// =============================================================================

// MonthGrid describes the shape of one month for a calendar UI: how many
// days it has and which Monday-first column the 1st lands in.
type MonthGrid struct {
	Year          int
	Month         time.Month
	Days          int
	LeadingBlanks int
}

// GridForMonth computes the rendering shape of a month.
func GridForMonth(year int, month time.Month) MonthGrid {
	return MonthGrid{
		Year:          year,
		Month:         month,
		Days:          DaysInMonth(year, month),
		LeadingBlanks: MondayIndex(FirstWeekdayOfMonth(year, month)),
	}
}
