/*
store.go - Persistence interface for users and reservations

PURPOSE:
  Defines the interface between the booking service and storage. The store
  owns the User and Reservation collections for the process lifetime; no
  other component mutates them directly. Implementations exist for
  in-memory maps (volatile, the reference deployment) and SQLite (durable,
  same contract).

CONTRACT NOTES:
  - SaveUser / SaveReservation assign the next monotonic identifier when
    the record's ID is zero.
  - ReservationsByYear returns reservations whose START date falls in the
    year. A stay beginning in December and ending in January belongs to the
    December year only. The conflict gate does NOT use it: a stay may span
    any number of year boundaries, so conflict checks go through
    ReservationsOverlapping instead.
  - UpdateReservationStatus is an unconditional write. The status state
    machine is enforced by the Service, which serializes all mutations.

IMPLEMENTATIONS:
  - store/memory: In-memory maps, volatile
  - store/sqlite: SQLite with WAL, durable

SEE ALSO:
  - service.go: The only caller that mutates through this interface
*/
package booking

import "context"

// Store handles persistence of users and reservations.
type Store interface {
	// SaveUser persists a user, assigning the next ID when u.ID is zero.
	SaveUser(ctx context.Context, u User) (User, error)

	// GetUser returns the user or ErrUserNotFound.
	GetUser(ctx context.Context, id UserID) (User, error)

	// GetUserByUsername looks up a user case-insensitively.
	// Returns ErrUserNotFound when no user matches.
	GetUserByUsername(ctx context.Context, username string) (User, error)

	// ListUsers returns all users in ID order.
	ListUsers(ctx context.Context) ([]User, error)

	// SaveReservation persists a reservation, assigning the next ID when
	// r.ID is zero.
	SaveReservation(ctx context.Context, r Reservation) (Reservation, error)

	// GetReservation returns the reservation or ErrReservationNotFound.
	GetReservation(ctx context.Context, id ReservationID) (Reservation, error)

	// UpdateReservationStatus overwrites the status of an existing
	// reservation and returns the updated record, or ErrReservationNotFound.
	UpdateReservationStatus(ctx context.Context, id ReservationID, status Status) (Reservation, error)

	// ReservationsByYear returns all reservations whose start date falls
	// within [Jan 1, Dec 31] of the year, in no particular order.
	ReservationsByYear(ctx context.Context, year int) ([]Reservation, error)

	// ReservationsOverlapping returns all reservations whose inclusive
	// [Start, End] range shares at least one day with [start, end],
	// regardless of how many year boundaries either range spans.
	ReservationsOverlapping(ctx context.Context, start, end Date) ([]Reservation, error)

	// Close releases any underlying resources.
	Close() error
}
