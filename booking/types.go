/*
Package booking provides the core reservation engine for a single shared
vacation property.

PURPOSE:
  This package contains the domain types and algorithms for coordinating
  stays at one property: per-day availability for a calendar year, overlap
  conflict detection against approved reservations, yearly occupancy
  statistics, and the reservation lifecycle (pending -> approved/rejected,
  or pending -> cancelled by the requester).

KEY CONCEPTS IN THIS FILE (types.go):
  - User: A family member (or the admin) who can request stays
  - Reservation: A request to occupy the property over an inclusive date range
  - Status: Closed lifecycle enum (pending, approved, rejected, cancelled)
  - UserID/ReservationID: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Closed enums: Status is a typed constant set, transitions are
     exhaustively checkable (see service.go)
  2. Type Safety: Strong typing for IDs prevents mixing user/reservation IDs
  3. Value dates: Start/End are day-granularity Date values, both inclusive

SEE ALSO:
  - dates.go: Date value type and calendar utilities
  - availability.go: Per-day status and conflict detection
  - stats.go: Yearly statistics aggregation
  - service.go: Reservation lifecycle orchestration
*/
package booking

import "time"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID int
type ReservationID int

// =============================================================================
// USER - A family member who can request stays
// =============================================================================

// User is created once at process start (seed data) and is immutable
// thereafter. Usernames are unique case-insensitively.
type User struct {
	ID       UserID
	Username string
	Email    string // optional, used by the notification collaborator
	Password string // optional credential; no real authentication in this system
	IsAdmin  bool
}

// =============================================================================
// STATUS - Closed reservation lifecycle enum
// =============================================================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. Only pending reservations
// may transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// =============================================================================
// RESERVATION - A request to occupy the property
// =============================================================================

// Reservation covers the inclusive range [Start, End]. End must be strictly
// after Start; that is enforced at the service boundary, not by the store.
type Reservation struct {
	ID        ReservationID
	UserID    UserID
	Start     Date
	End       Date
	Guests    int // 1..10, validated at creation
	Notes     string
	Status    Status
	CreatedAt time.Time // immutable, set once at creation
}

// Nights returns the length of the stay in nights.
func (r Reservation) Nights() int {
	return NightsBetween(r.Start, r.End)
}

// Covers reports whether day d falls within the reservation's inclusive
// date range.
func (r Reservation) Covers(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// =============================================================================
// GUEST LIMITS
// =============================================================================

const (
	MinGuests = 1
	MaxGuests = 10
)
