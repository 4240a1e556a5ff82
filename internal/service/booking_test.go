package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func deluxeBooking() BookingRequest {
	return BookingRequest{
		CheckIn:       "2024-03-01",
		CheckOut:      "2024-03-04",
		Guests:        2,
		RoomType:      "Deluxe",
		PaymentMethod: "Credit Card",
	}
}

func TestSearchCapacityFilter(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Single", "80", 1)
	f.db.addCategory("Deluxe", "200", 4)
	f.db.addCategory("Family Suite", "320", 6)
	ctx := context.Background()

	tests := []struct {
		guests int
		want   []string
	}{
		{1, []string{"Single", "Deluxe", "Family Suite"}},
		{2, []string{"Deluxe", "Family Suite"}},
		{6, []string{"Family Suite"}},
	}
	for _, tt := range tests {
		offer, err := f.booking.Search(ctx, f.guest, tt.guests)
		require.NoError(t, err)
		var got []string
		for _, c := range offer {
			got = append(got, c.Type)
		}
		assert.Equal(t, tt.want, got)
	}

	offer, err := f.booking.Search(ctx, f.guest, 7)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, offer)

	_, err = f.booking.Search(ctx, f.guest, 0)
	assert.ErrorIs(t, err, ErrInvalidGuests)
}

func TestCommitEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	ctx := context.Background()

	q, err := f.booking.Quote(ctx, f.guest, "Deluxe", "2024-03-01", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "600", q.Total.String())

	rc, err := f.booking.Commit(ctx, f.guest, deluxeBooking())
	require.NoError(t, err)
	assert.NotZero(t, rc.ReservationID)
	assert.NotZero(t, rc.PaymentID)
	assert.Equal(t, 3, rc.Nights)
	assert.Equal(t, "600", rc.TotalPrice.String())
	assert.Equal(t, "Credit Card", rc.PaymentMethod)
	assert.Equal(t, model.StatusPending, rc.Status)
	assert.Equal(t, "alice", rc.Username)

	pay := f.db.payments[rc.PaymentID]
	assert.Equal(t, "600", pay.Amount.String())
	assert.Equal(t, rc.ReservationID, pay.ReservationID)
	assert.Equal(t, model.StatusPending, f.db.reservations[rc.ReservationID].Status)

	require.NoError(t, f.reservations.Confirm(ctx, f.employee, rc.ReservationID))
	assert.Equal(t, model.StatusConfirmed, f.db.reservations[rc.ReservationID].Status)

	require.Len(t, f.pub.events, 2)
	assert.Equal(t, queue.QueueBooked, f.pub.events[0].Type)
	assert.Equal(t, "2024-03-01", f.pub.events[0].CheckIn)
	assert.Equal(t, queue.QueueConfirmed, f.pub.events[1].Type)
	assert.Equal(t, "eve", f.pub.events[1].ConfirmedBy)
}

func TestCommitRejectsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BookingRequest)
		want   error
	}{
		{"missing check in", func(r *BookingRequest) { r.CheckIn = "" }, ErrMissingField},
		{"missing check out", func(r *BookingRequest) { r.CheckOut = "" }, ErrMissingField},
		{"missing room type", func(r *BookingRequest) { r.RoomType = "" }, ErrMissingField},
		{"missing guests", func(r *BookingRequest) { r.Guests = 0 }, ErrInvalidGuests},
		{"missing method", func(r *BookingRequest) { r.PaymentMethod = " " }, ErrMissingField},
		{"bad date", func(r *BookingRequest) { r.CheckIn = "03/01/2024" }, ErrInvalidDate},
		{"too many guests", func(r *BookingRequest) { r.Guests = 5 }, ErrCapacityExceeded},
		{"unknown category", func(r *BookingRequest) { r.RoomType = "Penthouse" }, repository.ErrCategoryNotFound},
		{"unknown account", func(r *BookingRequest) { r.Username = "ghost" }, repository.ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.db.addCategory("Deluxe", "200", 4)
			req := deluxeBooking()
			tt.mutate(&req)

			sess := f.guest
			if req.Username != "" {
				sess = f.employee
			}
			_, err := f.booking.Commit(context.Background(), sess, req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, unwrapRoot(tt.want))
			assert.Empty(t, f.db.reservations)
			assert.Empty(t, f.db.payments)
			assert.Empty(t, f.pub.events)
		})
	}
}

func unwrapRoot(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, repository.ErrNotFound):
		return repository.ErrNotFound
	}
	return err
}

func TestCommitRollsBackOnPaymentFailure(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	boom := errors.New("payment insert failed")
	f.db.failPayment = boom

	_, err := f.booking.Commit(context.Background(), f.guest, deluxeBooking())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.db.reservations, "reservation must not outlive a failed payment")
	assert.Empty(t, f.db.payments)
	assert.Empty(t, f.pub.events)
}

func TestCommitRollsBackOnStatusFailure(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	boom := errors.New("status update failed")
	f.db.failSetPending = boom

	_, err := f.booking.Commit(context.Background(), f.guest, deluxeBooking())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.db.reservations)
	assert.Empty(t, f.db.payments)
}

func TestCommitZeroNightStayRollsBack(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	req := deluxeBooking()
	req.CheckOut = req.CheckIn

	q, err := f.booking.Quote(context.Background(), f.guest, "Deluxe", req.CheckIn, req.CheckOut)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Nights)

	_, err = f.booking.Commit(context.Background(), f.guest, req)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, f.db.reservations)
}

func TestCommitForAnotherAccount(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	f.db.addAccount("bob", model.RoleGuest)
	req := deluxeBooking()
	req.Username = "bob"

	_, err := f.booking.Commit(context.Background(), f.guest, req)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	rc, err := f.booking.Commit(context.Background(), f.employee, req)
	require.NoError(t, err)
	assert.Equal(t, "bob", rc.Username)
}

func TestCommitSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	f.pub.err = errors.New("broker down")

	rc, err := f.booking.Commit(context.Background(), f.guest, deluxeBooking())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, f.db.reservations[rc.ReservationID].Status)
}

// Overlapping stays in the same category are accepted: availability only
// checks capacity.
func TestNoDoubleBookingGuard(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	ctx := context.Background()
	in := ReservationInput{CheckIn: "2024-03-01", CheckOut: "2024-03-04", Guests: 2, RoomType: "Deluxe"}

	first, err := f.reservations.Create(ctx, f.guest, in)
	require.NoError(t, err)
	in.CheckIn, in.CheckOut = "2024-03-02", "2024-03-05"
	second, err := f.reservations.Create(ctx, f.guest, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.db.reservations, 2)

	_, err = f.booking.Commit(ctx, f.guest, deluxeBooking())
	require.NoError(t, err)
	assert.Len(t, f.db.reservations, 3)
}
