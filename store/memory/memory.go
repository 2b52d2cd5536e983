// Package memory provides an in-memory booking.Store implementation.
// State is volatile: everything is lost on restart. This matches the
// reference deployment and is what the tests use.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/casona/booking-engine/booking"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu              sync.RWMutex
	users           map[booking.UserID]booking.User
	reservations    map[booking.ReservationID]booking.Reservation
	nextUser        booking.UserID
	nextReservation booking.ReservationID
}

func New() *Store {
	return &Store{
		users:           make(map[booking.UserID]booking.User),
		reservations:    make(map[booking.ReservationID]booking.Reservation),
		nextUser:        1,
		nextReservation: 1,
	}
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) SaveUser(_ context.Context, u booking.User) (booking.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		u.ID = s.nextUser
		s.nextUser++
	} else if u.ID >= s.nextUser {
		s.nextUser = u.ID + 1
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id booking.UserID) (booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return booking.User{}, booking.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return booking.User{}, booking.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]booking.User, 0, len(s.users))
	for id := booking.UserID(1); id < s.nextUser; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// =============================================================================
// RESERVATIONS
// =============================================================================

func (s *Store) SaveReservation(_ context.Context, r booking.Reservation) (booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == 0 {
		r.ID = s.nextReservation
		s.nextReservation++
	} else if r.ID >= s.nextReservation {
		s.nextReservation = r.ID + 1
	}
	s.reservations[r.ID] = r
	return r, nil
}

func (s *Store) GetReservation(_ context.Context, id booking.ReservationID) (booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return booking.Reservation{}, booking.ErrReservationNotFound
	}
	return r, nil
}

func (s *Store) UpdateReservationStatus(_ context.Context, id booking.ReservationID, status booking.Status) (booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return booking.Reservation{}, booking.ErrReservationNotFound
	}
	r.Status = status
	s.reservations[id] = r
	return r, nil
}

func (s *Store) ReservationsByYear(_ context.Context, year int) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []booking.Reservation
	for _, r := range s.reservations {
		if r.Start.Year() == year {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ReservationsOverlapping(_ context.Context, start, end booking.Date) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []booking.Reservation
	for _, r := range s.reservations {
		if booking.RangesOverlap(start, end, r.Start, r.End) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Close() error { return nil }
