/*
handlers.go - HTTP API handlers for the booking coordination system

PURPOSE:
  Exposes the booking engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the booking service.

ENDPOINTS:
  Member:
    GET   /api/user/calendar/{year}          Per-day availability
    GET   /api/user/calendar/{year}/grid     Monday-first month shapes
    GET   /api/user/reservations/{year}      Own reservations
    POST  /api/user/reservations             Request a stay
    POST  /api/user/reservations/{id}/cancel Withdraw a pending request

  Admin:
    GET   /api/admin/stats/{year}                  Dashboard statistics
    GET   /api/admin/reservations/{year}           All reservations
    GET   /api/admin/reservations/pending/{year}   Awaiting decision
    GET   /api/admin/reservations/history/{year}   Decided
    PATCH /api/admin/reservations/{id}/status      Approve / reject

  Misc:
    GET   /api/users                         Seeded users

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 403: Cancelling someone else's reservation
  - 404: Unknown reservation or user
  - 409: Date conflict or illegal status transition
  - 500: Internal errors

  Validation (400) and conflict (409) responses carry different messages
  so the frontend can guide the user to valid dates versus valid input.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/casona/booking-engine/booking"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *booking.Service

	// MemberID is the identity assumed by /api/user routes when the
	// request names no user. There is no real authentication.
	MemberID booking.UserID
}

// NewHandler creates a new handler around the booking service.
func NewHandler(svc *booking.Service, memberID booking.UserID) *Handler {
	return &Handler{Service: svc, MemberID: memberID}
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns the seeded users for the selection screen.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Users(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalendar returns the per-day status sequence for a year.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	days, err := h.Service.CalendarByYear(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute calendar", err)
		return
	}

	dtos := make([]CalendarDayDTO, len(days))
	for i, d := range days {
		dtos[i] = CalendarDayDTO{Date: d.Date.String(), Status: string(d.Status)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalendarGrid returns the twelve Monday-first month shapes the
// calendar view renders for a year.
func (h *Handler) GetCalendarGrid(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	grids := make([]MonthGridDTO, 0, 12)
	for m := time.January; m <= time.December; m++ {
		grids = append(grids, toMonthGridDTO(booking.GridForMonth(year, m)))
	}
	writeJSON(w, http.StatusOK, grids)
}

// GetUserReservations returns the member's reservations for a year.
func (h *Handler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	reservations, err := h.Service.UserReservationsByYear(r.Context(), h.MemberID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reservations", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDTOs(r, reservations, false))
}

// CreateReservation validates and stores a new stay request.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := booking.ParseISODate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid startDate (use YYYY-MM-DD)", err)
		return
	}
	end, err := booking.ParseISODate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid endDate (use YYYY-MM-DD)", err)
		return
	}

	userID := booking.UserID(req.UserID)
	if userID == 0 {
		userID = h.MemberID
	}

	created, err := h.Service.CreateReservation(r.Context(), booking.CreateInput{
		UserID: userID,
		Start:  start,
		End:    end,
		Guests: req.NumberOfGuests,
		Notes:  req.Notes,
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationDTO(created, ""))
}

// CancelReservation withdraws the member's own pending reservation.
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	updated, err := h.Service.CancelReservation(r.Context(), id, h.MemberID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(updated, ""))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// GetStats returns dashboard statistics for a year, computed over the
// year's approved reservations.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.StatsByYear(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}

// ListReservations returns all of a year's reservations with usernames.
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	h.listForYear(w, r, h.Service.ReservationsByYear)
}

// ListPendingReservations returns the year's undecided reservations.
func (h *Handler) ListPendingReservations(w http.ResponseWriter, r *http.Request) {
	h.listForYear(w, r, h.Service.PendingByYear)
}

// ListReservationHistory returns the year's decided reservations, newest
// start date first.
func (h *Handler) ListReservationHistory(w http.ResponseWriter, r *http.Request) {
	h.listForYear(w, r, h.Service.HistoryByYear)
}

func (h *Handler) listForYear(
	w http.ResponseWriter,
	r *http.Request,
	query func(ctx context.Context, year int) ([]booking.Reservation, error),
) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	reservations, err := query(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reservations", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDTOs(r, reservations, true))
}

// UpdateReservationStatus applies an admin decision.
func (h *Handler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status := booking.Status(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid status (use approved or rejected)", nil)
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), id, status, req.AdminMessage)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(updated, ""))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) toDTOs(r *http.Request, reservations []booking.Reservation, withUsernames bool) []ReservationDTO {
	var names map[booking.UserID]string
	if withUsernames {
		names, _ = h.Service.UsernameMap(r.Context())
	}

	dtos := make([]ReservationDTO, len(reservations))
	for i, res := range reservations {
		name := ""
		if withUsernames {
			if n, ok := names[res.UserID]; ok {
				name = n
			} else {
				name = "Unknown User"
			}
		}
		dtos[i] = toReservationDTO(res, name)
	}
	return dtos
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, false
	}
	return year, true
}

func idParam(w http.ResponseWriter, r *http.Request) (booking.ReservationID, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "Invalid reservation id", err)
		return 0, false
	}
	return booking.ReservationID(id), true
}

// writeBookingError maps domain errors to HTTP responses.
func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid reservation data", err)
	case errors.Is(err, booking.ErrConflict):
		writeError(w, http.StatusConflict,
			"The selected date range includes days already occupied by an approved reservation", err)
	case errors.Is(err, booking.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Reservation has already been decided", err)
	case errors.Is(err, booking.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Reservation belongs to another user", err)
	case booking.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
