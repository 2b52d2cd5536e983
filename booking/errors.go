/*
errors.go - Centralized error types for the booking engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these to HTTP status codes; see api/handlers.go.

ERROR CATEGORIES:
  1. Validation errors - Malformed input (dates, guest counts)
  2. Conflict errors   - Candidate range overlaps an approved reservation
  3. Not-found errors  - Unknown reservation or user identifiers
  4. Transition errors - Illegal status changes on decided reservations
  5. Notification errors - Email collaborator failures (warn-only, never
     rolled back into the core operation)

USAGE:
  if errors.Is(err, booking.ErrConflict) {
      // tell the user to pick different dates
  }

SEE ALSO:
  - service.go: Produces these errors
  - api/handlers.go: Maps them to HTTP responses
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned for malformed input: bad dates, end not
	// after start, guest count out of bounds.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a candidate range overlaps an approved
	// reservation. The user must choose different dates; never retried.
	ErrConflict = errors.New("date range overlaps an approved reservation")

	// ErrReservationNotFound is returned when a reservation ID is unknown.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUserNotFound is returned when a user ID is unknown.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidTransition is returned when a status change is requested on
	// a reservation that is no longer pending. Decisions are final.
	ErrInvalidTransition = errors.New("reservation already decided")

	// ErrNotOwner is returned when a user tries to cancel a reservation
	// they do not own.
	ErrNotOwner = errors.New("reservation belongs to another user")

	// ErrNotification is returned by the notification collaborator. It is
	// logged alongside a successful core operation, never propagated as a
	// failure of the reservation itself.
	ErrNotification = errors.New("notification delivery failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field so the presentation layer can
// guide the user to valid input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError describes which approved reservation blocked the candidate.
type ConflictError struct {
	Start    Date
	End      Date
	Blocking ReservationID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("range %s to %s overlaps approved reservation %d",
		e.Start, e.End, e.Blocking)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// TransitionError records the attempted illegal status change.
type TransitionError struct {
	ID   ReservationID
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("reservation %d: cannot transition %s -> %s", e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNotOwner)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
