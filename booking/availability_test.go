package booking_test

import (
	"testing"
	"time"

	"github.com/casona/booking-engine/booking"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func reservation(id int, status booking.Status, start, end booking.Date) booking.Reservation {
	return booking.Reservation{
		ID:     booking.ReservationID(id),
		UserID: 2,
		Start:  start,
		End:    end,
		Guests: 2,
		Status: status,
	}
}

func statusOn(t *testing.T, days []booking.CalendarDay, date booking.Date) booking.DayStatus {
	t.Helper()
	for _, day := range days {
		if day.Date.Equal(date) {
			return day.Status
		}
	}
	t.Fatalf("date %s not in calendar", date)
	return ""
}

// =============================================================================
// YEAR CALENDAR TESTS
// =============================================================================

func TestComputeYearCalendar_EmptyYear_AllAvailable(t *testing.T) {
	for _, year := range []int{2024, 2025} {
		days := booking.ComputeYearCalendar(year, nil)

		if len(days) != booking.DaysInYear(year) {
			t.Fatalf("year %d: expected %d entries, got %d", year, booking.DaysInYear(year), len(days))
		}
		for _, day := range days {
			if day.Status != booking.DayAvailable {
				t.Fatalf("year %d: day %s is %s, want available", year, day.Date, day.Status)
			}
		}
	}
}

func TestComputeYearCalendar_Ordered(t *testing.T) {
	days := booking.ComputeYearCalendar(2025, nil)

	if !days[0].Date.Equal(d(2025, time.January, 1)) {
		t.Errorf("first day is %s, want 2025-01-01", days[0].Date)
	}
	if !days[len(days)-1].Date.Equal(d(2025, time.December, 31)) {
		t.Errorf("last day is %s, want 2025-12-31", days[len(days)-1].Date)
	}
	for i := 1; i < len(days); i++ {
		if !days[i].Date.After(days[i-1].Date) {
			t.Fatalf("calendar not in date order at index %d", i)
		}
	}
}

func TestComputeYearCalendar_StatusPrecedence(t *testing.T) {
	// GIVEN: An approved and a pending reservation both covering June 3
	reservations := []booking.Reservation{
		reservation(1, booking.StatusApproved, d(2025, time.June, 1), d(2025, time.June, 5)),
		reservation(2, booking.StatusPending, d(2025, time.June, 3), d(2025, time.June, 8)),
	}

	days := booking.ComputeYearCalendar(2025, reservations)

	// THEN: Occupied wins on shared days, pending shows on its own days
	if got := statusOn(t, days, d(2025, time.June, 3)); got != booking.DayOccupied {
		t.Errorf("June 3 = %s, want occupied", got)
	}
	if got := statusOn(t, days, d(2025, time.June, 5)); got != booking.DayOccupied {
		t.Errorf("June 5 = %s, want occupied (inclusive end)", got)
	}
	if got := statusOn(t, days, d(2025, time.June, 6)); got != booking.DayPending {
		t.Errorf("June 6 = %s, want pending", got)
	}
	if got := statusOn(t, days, d(2025, time.June, 9)); got != booking.DayAvailable {
		t.Errorf("June 9 = %s, want available", got)
	}
}

func TestComputeYearCalendar_RejectedAndCancelledContributeNothing(t *testing.T) {
	reservations := []booking.Reservation{
		reservation(1, booking.StatusRejected, d(2025, time.March, 1), d(2025, time.March, 10)),
		reservation(2, booking.StatusCancelled, d(2025, time.April, 1), d(2025, time.April, 10)),
	}

	days := booking.ComputeYearCalendar(2025, reservations)

	if got := statusOn(t, days, d(2025, time.March, 5)); got != booking.DayAvailable {
		t.Errorf("rejected reservation leaked status %s", got)
	}
	if got := statusOn(t, days, d(2025, time.April, 5)); got != booking.DayAvailable {
		t.Errorf("cancelled reservation leaked status %s", got)
	}
}

// =============================================================================
// OVERLAP TESTS
// =============================================================================

func TestRangesOverlap_SymmetricAndReflexive(t *testing.T) {
	ranges := []struct{ start, end booking.Date }{
		{d(2025, time.June, 1), d(2025, time.June, 5)},
		{d(2025, time.June, 5), d(2025, time.June, 8)},
		{d(2025, time.July, 1), d(2025, time.July, 2)},
		{d(2025, time.December, 28), d(2026, time.January, 3)},
	}

	for _, a := range ranges {
		// Reflexivity: a range overlaps itself
		if !booking.RangesOverlap(a.start, a.end, a.start, a.end) {
			t.Errorf("range %s-%s does not overlap itself", a.start, a.end)
		}
		for _, b := range ranges {
			ab := booking.RangesOverlap(a.start, a.end, b.start, b.end)
			ba := booking.RangesOverlap(b.start, b.end, a.start, a.end)
			if ab != ba {
				t.Errorf("overlap not symmetric for %s-%s vs %s-%s", a.start, a.end, b.start, b.end)
			}
		}
	}
}

func TestRangesOverlap_Boundaries(t *testing.T) {
	// Inclusive ends: sharing a single day is an overlap
	if !booking.RangesOverlap(
		d(2025, time.June, 1), d(2025, time.June, 5),
		d(2025, time.June, 5), d(2025, time.June, 8)) {
		t.Error("ranges sharing June 5 should overlap")
	}

	// Adjacent but not sharing a day is not
	if booking.RangesOverlap(
		d(2025, time.June, 1), d(2025, time.June, 5),
		d(2025, time.June, 6), d(2025, time.June, 8)) {
		t.Error("adjacent ranges should not overlap")
	}
}

func TestHasApprovedConflict(t *testing.T) {
	approved := reservation(1, booking.StatusApproved, d(2025, time.June, 1), d(2025, time.June, 5))
	pending := reservation(2, booking.StatusPending, d(2025, time.June, 10), d(2025, time.June, 15))
	set := []booking.Reservation{approved, pending}

	// Exact match conflicts
	if !booking.HasApprovedConflict(d(2025, time.June, 1), d(2025, time.June, 5), set) {
		t.Error("exact match should conflict")
	}
	// Partial overlap conflicts (candidate starts one day before the end)
	if !booking.HasApprovedConflict(d(2025, time.June, 4), d(2025, time.June, 10), set) {
		t.Error("partial overlap should conflict")
	}
	// Pending reservations never block
	if booking.HasApprovedConflict(d(2025, time.June, 10), d(2025, time.June, 15), set) {
		t.Error("pending reservations should not cause conflicts")
	}
	// Free range is free
	if booking.HasApprovedConflict(d(2025, time.July, 1), d(2025, time.July, 5), set) {
		t.Error("free range should not conflict")
	}
}

func TestFindApprovedConflict_ReturnsBlocking(t *testing.T) {
	approved := reservation(7, booking.StatusApproved, d(2025, time.June, 1), d(2025, time.June, 5))

	blocking, ok := booking.FindApprovedConflict(
		d(2025, time.June, 5), d(2025, time.June, 8),
		[]booking.Reservation{approved})

	if !ok {
		t.Fatal("expected a conflict")
	}
	if blocking.ID != 7 {
		t.Errorf("blocking ID = %d, want 7", blocking.ID)
	}
}

// =============================================================================
// MONTH GRID TESTS
// =============================================================================

func TestGridForMonth(t *testing.T) {
	// June 2025 starts on a Sunday: 30 days, 6 leading blanks Monday-first
	grid := booking.GridForMonth(2025, time.June)

	if grid.Days != 30 {
		t.Errorf("Days = %d, want 30", grid.Days)
	}
	if grid.LeadingBlanks != 6 {
		t.Errorf("LeadingBlanks = %d, want 6", grid.LeadingBlanks)
	}

	// September 2025 starts on a Monday: no blanks
	grid = booking.GridForMonth(2025, time.September)
	if grid.LeadingBlanks != 0 {
		t.Errorf("LeadingBlanks = %d, want 0", grid.LeadingBlanks)
	}
}
