/*
service.go - Reservation lifecycle orchestration

PURPOSE:
  The Service is the single writer over the Store. It validates requests,
  runs the conflict gate, enforces the status state machine, and emits
  notification events. Constructed once at process start and injected into
  request handlers; there is no hidden global.

STATE MACHINE:
  pending --approve--> approved   (admin)
  pending --reject---> rejected   (admin)
  pending --cancel---> cancelled  (owner)

  All three outcomes are terminal. Re-deciding a decided reservation fails
  with ErrInvalidTransition.

CONFLICT GATE:
  A candidate range is rejected iff it overlaps any approved reservation.
  Pending reservations may overlap freely; the admin resolves them by
  approving at most one.

  Stay length is unbounded, so a reservation may span any number of year
  boundaries. The gate therefore asks the store for every reservation
  overlapping the candidate range directly (ReservationsOverlapping)
  rather than reconstructing the set from start-year buckets. Ranges
  crossing December 31, in either direction and over multiple years, are
  an explicit, tested contract.

CONCURRENCY:
  One mutex serializes every mutation, so the conflict check and the
  insert of the new record are atomic with respect to each other. A single
  global lock suffices: there is exactly one property.

NOTIFICATIONS:
  Creation and status changes emit events to the Notifier. Delivery is
  fire-and-forget; a failed email is logged by the collaborator and never
  rolls back the reservation.

SEE ALSO:
  - availability.go: FindApprovedConflict
  - store.go: Persistence contract
  - notify/: Notifier implementations
*/
package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// =============================================================================
// NOTIFIER - Outbound collaborator contract
// =============================================================================

// Notifier receives reservation events together with the requesting user
// (display name and optional email). Implementations must not block the
// caller and must swallow (log) their own delivery errors.
type Notifier interface {
	// ReservationCreated is emitted after a reservation is stored.
	ReservationCreated(r Reservation, requester User)

	// StatusChanged is emitted after an admin decision or an owner
	// cancellation. adminMessage may be empty.
	StatusChanged(r Reservation, requester User, adminMessage string)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) ReservationCreated(Reservation, User)    {}
func (NopNotifier) StatusChanged(Reservation, User, string) {}

// =============================================================================
// SERVICE
// =============================================================================

// Service coordinates all reservation reads and writes.
type Service struct {
	store    Store
	notifier Notifier

	// mu serializes mutations so the conflict check and the subsequent
	// insert form one atomic step.
	mu sync.Mutex

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewService creates a service over the given store. A nil notifier is
// replaced with NopNotifier.
func NewService(store Store, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// CreateInput carries a validated-at-the-boundary reservation request.
type CreateInput struct {
	UserID UserID
	Start  Date
	End    Date
	Guests int
	Notes  string
}

// CreateReservation validates the input, runs the conflict gate, and
// stores the new reservation with status pending.
func (s *Service) CreateReservation(ctx context.Context, in CreateInput) (Reservation, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return Reservation{}, &ValidationError{Field: "dates", Message: "start and end dates are required"}
	}
	if !in.End.After(in.Start) {
		return Reservation{}, &ValidationError{Field: "endDate", Message: "end date must be after start date"}
	}
	if in.Guests < MinGuests || in.Guests > MaxGuests {
		return Reservation{}, &ValidationError{
			Field:   "numberOfGuests",
			Message: fmt.Sprintf("must be between %d and %d", MinGuests, MaxGuests),
		}
	}

	user, err := s.store.GetUser(ctx, in.UserID)
	if err != nil {
		return Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	neighbors, err := s.store.ReservationsOverlapping(ctx, in.Start, in.End)
	if err != nil {
		return Reservation{}, err
	}
	if blocking, ok := FindApprovedConflict(in.Start, in.End, neighbors); ok {
		return Reservation{}, &ConflictError{Start: in.Start, End: in.End, Blocking: blocking.ID}
	}

	r := Reservation{
		UserID:    in.UserID,
		Start:     in.Start,
		End:       in.End,
		Guests:    in.Guests,
		Notes:     in.Notes,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	stored, err := s.store.SaveReservation(ctx, r)
	if err != nil {
		return Reservation{}, err
	}

	s.notifier.ReservationCreated(stored, user)
	return stored, nil
}

// UpdateStatus applies an admin decision to a pending reservation.
// Only approved and rejected are accepted as targets.
func (s *Service) UpdateStatus(ctx context.Context, id ReservationID, status Status, adminMessage string) (Reservation, error) {
	if status != StatusApproved && status != StatusRejected {
		return Reservation{}, &ValidationError{Field: "status", Message: "must be approved or rejected"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if current.Status != StatusPending {
		return Reservation{}, &TransitionError{ID: id, From: current.Status, To: status}
	}

	// Approving must re-run the conflict gate: another pending request
	// overlapping this one may have been approved since creation.
	if status == StatusApproved {
		neighbors, err := s.store.ReservationsOverlapping(ctx, current.Start, current.End)
		if err != nil {
			return Reservation{}, err
		}
		if blocking, ok := FindApprovedConflict(current.Start, current.End, neighbors); ok {
			return Reservation{}, &ConflictError{Start: current.Start, End: current.End, Blocking: blocking.ID}
		}
	}

	updated, err := s.store.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		return Reservation{}, err
	}

	s.notifier.StatusChanged(updated, s.requesterOf(ctx, updated.UserID), adminMessage)
	return updated, nil
}

// CancelReservation lets the owner withdraw a pending reservation.
func (s *Service) CancelReservation(ctx context.Context, id ReservationID, userID UserID) (Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if current.UserID != userID {
		return Reservation{}, ErrNotOwner
	}
	if current.Status != StatusPending {
		return Reservation{}, &TransitionError{ID: id, From: current.Status, To: StatusCancelled}
	}

	updated, err := s.store.UpdateReservationStatus(ctx, id, StatusCancelled)
	if err != nil {
		return Reservation{}, err
	}

	s.notifier.StatusChanged(updated, s.requesterOf(ctx, updated.UserID), "")
	return updated, nil
}

func (s *Service) requesterOf(ctx context.Context, id UserID) User {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return User{ID: id, Username: "Unknown User"}
	}
	return user
}

// =============================================================================
// QUERIES
// =============================================================================

// CalendarByYear returns the per-day status sequence for a year.
func (s *Service) CalendarByYear(ctx context.Context, year int) ([]CalendarDay, error) {
	rs, err := s.store.ReservationsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return ComputeYearCalendar(year, rs), nil
}

// StatsByYear computes dashboard statistics over the year's APPROVED
// reservations.
func (s *Service) StatsByYear(ctx context.Context, year int) (Stats, error) {
	rs, err := s.store.ReservationsByYear(ctx, year)
	if err != nil {
		return Stats{}, err
	}
	names, err := s.usernames(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(year, ApprovedOnly(rs), names), nil
}

func (s *Service) usernames(ctx context.Context) (map[UserID]string, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[UserID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}

// ReservationsByYear returns all reservations starting in the year.
func (s *Service) ReservationsByYear(ctx context.Context, year int) ([]Reservation, error) {
	return s.store.ReservationsByYear(ctx, year)
}

// PendingByYear returns the year's pending reservations.
func (s *Service) PendingByYear(ctx context.Context, year int) ([]Reservation, error) {
	rs, err := s.store.ReservationsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	var out []Reservation
	for _, r := range rs {
		if r.Status == StatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

// HistoryByYear returns the year's decided reservations (approved and
// rejected), sorted by start date descending.
func (s *Service) HistoryByYear(ctx context.Context, year int) ([]Reservation, error) {
	rs, err := s.store.ReservationsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	var out []Reservation
	for _, r := range rs {
		if r.Status == StatusApproved || r.Status == StatusRejected {
			out = append(out, r)
		}
	}
	sortByStartDesc(out)
	return out, nil
}

// UserReservationsByYear returns one user's reservations for the year,
// sorted by start date descending.
func (s *Service) UserReservationsByYear(ctx context.Context, userID UserID, year int) ([]Reservation, error) {
	rs, err := s.store.ReservationsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	var out []Reservation
	for _, r := range rs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortByStartDesc(out)
	return out, nil
}

// Users returns all known users.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// UsernameMap returns the ID-to-username mapping for presentation.
func (s *Service) UsernameMap(ctx context.Context) (map[UserID]string, error) {
	return s.usernames(ctx)
}

func sortByStartDesc(rs []Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].Start.Equal(rs[j].Start) {
			return rs[i].Start.After(rs[j].Start)
		}
		return rs[i].ID > rs[j].ID
	})
}
