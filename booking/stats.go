/*
stats.go - Yearly occupancy statistics

PURPOSE:
  Aggregates a year's reservations into the numbers the admin dashboard
  shows: total stays, occupied nights, per-month and per-user breakdowns,
  the most frequent guest, and the occupancy rate.

CONTRACT:
  ComputeStats operates on exactly the set it is given, with no implicit
  status filtering. Callers wanting approved-only statistics (the usual
  dashboard semantic) must pre-filter with ApprovedOnly.

ROUNDING:
  OccupancyRate is occupiedDays / daysInYear * 100, computed with
  shopspring/decimal and rounded to one decimal place.

SEE ALSO:
  - dates.go: NightsBetween, DaysInYear
  - service.go: StatsByYear pre-filters to approved
*/
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATS TYPES
// =============================================================================

type MonthCount struct {
	Month time.Month
	Count int
}

type UserCount struct {
	Username string
	Count    int // occupied nights, not reservation count
}

// Stats is the yearly dashboard aggregate.
type Stats struct {
	TotalReservations   int
	OccupiedDays        int
	FrequentUser        string // "-" when the input set is empty
	OccupancyRate       float64
	ReservationsByMonth []MonthCount
	ReservationsByUser  []UserCount
}

// =============================================================================
// AGGREGATION
// =============================================================================

// ApprovedOnly filters a reservation set down to approved records.
func ApprovedOnly(reservations []Reservation) []Reservation {
	var out []Reservation
	for _, r := range reservations {
		if r.Status == StatusApproved {
			out = append(out, r)
		}
	}
	return out
}

// ComputeStats aggregates the given reservations for the given year.
// usernamesByID maps user IDs to display names; unknown IDs fall back to
// "Unknown User". Month buckets use each reservation's start date.
func ComputeStats(year int, reservations []Reservation, usernamesByID map[UserID]string) Stats {
	stats := Stats{
		TotalReservations: len(reservations),
		FrequentUser:      "-",
	}

	byMonth := make(map[time.Month]int)
	nightsByUser := make(map[string]int)
	var userOrder []string // first-encountered order breaks frequent-user ties

	for _, r := range reservations {
		nights := r.Nights()
		stats.OccupiedDays += nights
		byMonth[r.Start.Month()]++

		name, ok := usernamesByID[r.UserID]
		if !ok {
			name = "Unknown User"
		}
		if _, seen := nightsByUser[name]; !seen {
			userOrder = append(userOrder, name)
		}
		nightsByUser[name] += nights
	}

	for m := time.January; m <= time.December; m++ {
		if byMonth[m] > 0 {
			stats.ReservationsByMonth = append(stats.ReservationsByMonth, MonthCount{Month: m, Count: byMonth[m]})
		}
	}

	best := -1
	for _, name := range userOrder {
		stats.ReservationsByUser = append(stats.ReservationsByUser, UserCount{Username: name, Count: nightsByUser[name]})
		if nightsByUser[name] > best {
			best = nightsByUser[name]
			stats.FrequentUser = name
		}
	}

	stats.OccupancyRate = occupancyRate(stats.OccupiedDays, DaysInYear(year))
	return stats
}

// occupancyRate returns occupied/total*100 rounded to one decimal place.
func occupancyRate(occupied, daysInYear int) float64 {
	rate := decimal.NewFromInt(int64(occupied) * 100).
		Div(decimal.NewFromInt(int64(daysInYear))).
		Round(1)
	f, _ := rate.Float64()
	return f
}
