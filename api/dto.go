/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the booking service, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/casona/booking-engine/booking"
)

// =============================================================================
// USERS
// =============================================================================

// UserDTO represents a user in API responses. Credentials are never
// serialized.
type UserDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func toUserDTO(u booking.User) UserDTO {
	return UserDTO{ID: int(u.ID), Username: u.Username, IsAdmin: u.IsAdmin}
}

// =============================================================================
// RESERVATIONS
// =============================================================================

// ReservationDTO represents a reservation in API responses. Username is
// populated on admin listings.
type ReservationDTO struct {
	ID             int    `json:"id"`
	UserID         int    `json:"userId"`
	Username       string `json:"username,omitempty"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Nights         int    `json:"nights"`
	NumberOfGuests int    `json:"numberOfGuests"`
	Notes          string `json:"notes,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

func toReservationDTO(r booking.Reservation, username string) ReservationDTO {
	return ReservationDTO{
		ID:             int(r.ID),
		UserID:         int(r.UserID),
		Username:       username,
		StartDate:      r.Start.String(),
		EndDate:        r.End.String(),
		Nights:         r.Nights(),
		NumberOfGuests: r.Guests,
		Notes:          r.Notes,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateReservationRequest is the request to create a reservation.
// UserID is optional; when absent the configured member user is assumed
// (there is no real authentication in this system).
type CreateReservationRequest struct {
	UserID         int    `json:"userId,omitempty"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	NumberOfGuests int    `json:"numberOfGuests"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateStatusRequest is the admin decision payload.
type UpdateStatusRequest struct {
	Status       string `json:"status"`
	AdminMessage string `json:"adminMessage,omitempty"`
}

// =============================================================================
// CALENDAR AND STATS
// =============================================================================

// CalendarDayDTO is one day of the year calendar.
type CalendarDayDTO struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// MonthGridDTO is the rendering shape of one month for Monday-first
// calendar grids.
type MonthGridDTO struct {
	Year          int `json:"year"`
	Month         int `json:"month"`
	Days          int `json:"days"`
	LeadingBlanks int `json:"leadingBlanks"`
}

func toMonthGridDTO(g booking.MonthGrid) MonthGridDTO {
	return MonthGridDTO{
		Year:          g.Year,
		Month:         int(g.Month),
		Days:          g.Days,
		LeadingBlanks: g.LeadingBlanks,
	}
}

// MonthCountDTO is one month bucket of the stats breakdown.
type MonthCountDTO struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

// UserCountDTO is one user's occupied-night count.
type UserCountDTO struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// StatsDTO is the yearly dashboard aggregate.
type StatsDTO struct {
	TotalReservations   int             `json:"totalReservations"`
	OccupiedDays        int             `json:"occupiedDays"`
	FrequentUser        string          `json:"frequentUser"`
	OccupancyRate       float64         `json:"occupancyRate"`
	ReservationsByMonth []MonthCountDTO `json:"reservationsByMonth"`
	ReservationsByUser  []UserCountDTO  `json:"reservationsByUser"`
}

func toStatsDTO(s booking.Stats) StatsDTO {
	dto := StatsDTO{
		TotalReservations:   s.TotalReservations,
		OccupiedDays:        s.OccupiedDays,
		FrequentUser:        s.FrequentUser,
		OccupancyRate:       s.OccupancyRate,
		ReservationsByMonth: []MonthCountDTO{},
		ReservationsByUser:  []UserCountDTO{},
	}
	for _, mc := range s.ReservationsByMonth {
		dto.ReservationsByMonth = append(dto.ReservationsByMonth, MonthCountDTO{Month: int(mc.Month), Count: mc.Count})
	}
	for _, uc := range s.ReservationsByUser {
		dto.ReservationsByUser = append(dto.ReservationsByUser, UserCountDTO{Username: uc.Username, Count: uc.Count})
	}
	return dto
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
