package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casona/booking-engine/booking"
	"github.com/casona/booking-engine/store/memory"
)

func date(year int, month time.Month, day int) booking.Date {
	return booking.NewDate(year, month, day)
}

func TestUsers(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	admin, err := store.SaveUser(ctx, booking.User{Username: "admin", IsAdmin: true})
	require.NoError(t, err)
	member, err := store.SaveUser(ctx, booking.User{Username: "Luis Glez"})
	require.NoError(t, err)

	// Monotonic IDs
	assert.Equal(t, booking.UserID(1), admin.ID)
	assert.Equal(t, booking.UserID(2), member.ID)

	got, err := store.GetUser(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis Glez", got.Username)

	// Case-insensitive username lookup
	got, err = store.GetUserByUsername(ctx, "luis glez")
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	_, err = store.GetUser(ctx, 99)
	assert.ErrorIs(t, err, booking.ErrUserNotFound)
	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, booking.ErrUserNotFound)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
}

func TestReservations(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	r1, err := store.SaveReservation(ctx, booking.Reservation{
		UserID: 2,
		Start:  date(2025, time.June, 1),
		End:    date(2025, time.June, 5),
		Guests: 2,
		Status: booking.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ReservationID(1), r1.ID)

	r2, err := store.SaveReservation(ctx, booking.Reservation{
		UserID: 2,
		Start:  date(2024, time.December, 28),
		End:    date(2025, time.January, 2),
		Guests: 4,
		Status: booking.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ReservationID(2), r2.ID)

	got, err := store.GetReservation(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r1, got)

	_, err = store.GetReservation(ctx, 99)
	assert.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestUpdateReservationStatus(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	r, err := store.SaveReservation(ctx, booking.Reservation{
		UserID: 2,
		Start:  date(2025, time.June, 1),
		End:    date(2025, time.June, 5),
		Guests: 2,
		Status: booking.StatusPending,
	})
	require.NoError(t, err)

	updated, err := store.UpdateReservationStatus(ctx, r.ID, booking.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, updated.Status)

	got, err := store.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, got.Status)

	_, err = store.UpdateReservationStatus(ctx, 99, booking.StatusApproved)
	assert.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestReservationsByYear_StartDateSemantics(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	// Starts in 2024, ends in 2025: indexed under 2024 only
	_, err := store.SaveReservation(ctx, booking.Reservation{
		UserID: 2,
		Start:  date(2024, time.December, 28),
		End:    date(2025, time.January, 2),
		Guests: 2,
		Status: booking.StatusPending,
	})
	require.NoError(t, err)

	in2025, err := store.SaveReservation(ctx, booking.Reservation{
		UserID: 2,
		Start:  date(2025, time.June, 1),
		End:    date(2025, time.June, 5),
		Guests: 2,
		Status: booking.StatusPending,
	})
	require.NoError(t, err)

	rs2024, err := store.ReservationsByYear(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, rs2024, 1)

	rs2025, err := store.ReservationsByYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, rs2025, 1)
	assert.Equal(t, in2025.ID, rs2025[0].ID)

	rs2023, err := store.ReservationsByYear(ctx, 2023)
	require.NoError(t, err)
	assert.Empty(t, rs2023)
}

func TestReservationsOverlapping(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	// A stay spanning two year boundaries
	long, err := store.SaveReservation(ctx, booking.Reservation{
		UserID: 2,
		Start:  date(2024, time.June, 1),
		End:    date(2026, time.June, 1),
		Guests: 2,
		Status: booking.StatusApproved,
	})
	require.NoError(t, err)

	// Entirely inside the stay's final year
	rs, err := store.ReservationsOverlapping(ctx, date(2026, time.May, 1), date(2026, time.May, 5))
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, long.ID, rs[0].ID)

	// Sharing only the stay's last day
	rs, err = store.ReservationsOverlapping(ctx, date(2026, time.June, 1), date(2026, time.June, 4))
	require.NoError(t, err)
	assert.Len(t, rs, 1)

	// Starting the day after
	rs, err = store.ReservationsOverlapping(ctx, date(2026, time.June, 2), date(2026, time.June, 4))
	require.NoError(t, err)
	assert.Empty(t, rs)

	// Ending the day before
	rs, err = store.ReservationsOverlapping(ctx, date(2024, time.May, 28), date(2024, time.May, 31))
	require.NoError(t, err)
	assert.Empty(t, rs)
}
