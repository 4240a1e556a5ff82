package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func newReservation(t *testing.T, f *fixture, in string) model.Reservation {
	t.Helper()
	r, err := f.reservations.Create(context.Background(), f.guest, ReservationInput{
		CheckIn: in, CheckOut: date(in).AddDate(0, 0, 2).Format(model.DateLayout), Guests: 2, RoomType: "Deluxe",
	})
	require.NoError(t, err)
	return r
}

func TestRecordPaymentMovesToPending(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	res := newReservation(t, f, "2024-03-01")
	require.Equal(t, model.StatusNone, f.db.reservations[res.ID].Status)

	p, err := f.payments.Record(context.Background(), f.guest, PaymentInput{
		ReservationID: res.ID, Amount: decimal.RequireFromString("400"), Method: "Cash",
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, f.db.clock, p.PaidAt)
	assert.Equal(t, model.StatusPending, f.db.reservations[res.ID].Status)
}

func TestRecordPaymentKeepsConfirmed(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	ctx := context.Background()
	res := newReservation(t, f, "2024-03-01")
	require.NoError(t, f.reservations.Confirm(ctx, f.employee, res.ID))

	_, err := f.payments.Record(ctx, f.guest, PaymentInput{
		ReservationID: res.ID, Amount: decimal.NewFromInt(50), Method: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, f.db.reservations[res.ID].Status)
	assert.Len(t, f.db.payments, 1)
}

func TestRecordPaymentErrors(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	res := newReservation(t, f, "2024-03-01")

	tests := []struct {
		name string
		in   PaymentInput
		want error
	}{
		{"zero amount", PaymentInput{ReservationID: res.ID, Amount: decimal.Zero, Method: "Cash"}, ErrInvalidAmount},
		{"negative amount", PaymentInput{ReservationID: res.ID, Amount: decimal.NewFromInt(-1), Method: "Cash"}, ErrInvalidAmount},
		{"missing method", PaymentInput{ReservationID: res.ID, Amount: decimal.NewFromInt(1)}, ErrMissingField},
		{"missing reservation id", PaymentInput{Amount: decimal.NewFromInt(1), Method: "Cash"}, ErrMissingField},
		{"unknown reservation", PaymentInput{ReservationID: 999, Amount: decimal.NewFromInt(1), Method: "Cash"}, repository.ErrReservationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.payments.Record(context.Background(), f.guest, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.db.payments)
	assert.Equal(t, model.StatusNone, f.db.reservations[res.ID].Status)
}

func TestRecordPaymentIsAtomic(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	res := newReservation(t, f, "2024-03-01")
	f.db.failSetPending = assert.AnError

	_, err := f.payments.Record(context.Background(), f.guest, PaymentInput{
		ReservationID: res.ID, Amount: decimal.NewFromInt(400), Method: "Cash",
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, f.db.payments, "payment must roll back with the status change")
}

func TestSummarize(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	ctx := context.Background()

	empty, err := f.payments.Summarize(ctx, f.admin, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalPayments)
	assert.True(t, empty.TotalRevenue.IsZero())

	march := newReservation(t, f, "2024-03-01")
	april := newReservation(t, f, "2024-04-10")
	newReservation(t, f, "2024-03-20")

	f.db.clock = time.Date(2024, 2, 25, 12, 0, 0, 0, time.UTC)
	_, err = f.payments.Record(ctx, f.guest, PaymentInput{ReservationID: march.ID, Amount: decimal.NewFromInt(400), Method: "Cash"})
	require.NoError(t, err)
	f.db.clock = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	_, err = f.payments.Record(ctx, f.guest, PaymentInput{ReservationID: april.ID, Amount: decimal.RequireFromString("150.25"), Method: "Credit Card"})
	require.NoError(t, err)
	require.NoError(t, f.reservations.Confirm(ctx, f.employee, march.ID))

	all, err := f.payments.Summarize(ctx, f.admin, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalPayments)
	assert.Equal(t, "550.25", all.TotalRevenue.String())
	assert.Equal(t, int64(3), all.TotalReservations)
	assert.Equal(t, int64(1), all.ConfirmedReservations)
	assert.Equal(t, int64(1), all.PendingReservations)

	// March: payments dated in March, reservations checking in during March.
	m, err := f.payments.Summarize(ctx, f.admin, &model.Period{Year: 2024, Month: time.March})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.TotalPayments)
	assert.Equal(t, "150.25", m.TotalRevenue.String())
	assert.Equal(t, int64(2), m.TotalReservations)
	assert.Equal(t, int64(1), m.ConfirmedReservations)
	assert.Equal(t, int64(0), m.PendingReservations)

	_, err = f.payments.Summarize(ctx, f.employee, nil)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestListForPeriod(t *testing.T) {
	f := newFixture(t)
	f.db.addCategory("Deluxe", "200", 4)
	ctx := context.Background()
	res := newReservation(t, f, "2024-03-01")

	for _, day := range []int{1, 15, 31} {
		f.db.clock = time.Date(2024, 3, day, 8, 0, 0, 0, time.UTC)
		_, err := f.payments.Record(ctx, f.guest, PaymentInput{ReservationID: res.ID, Amount: decimal.NewFromInt(int64(day)), Method: "Cash"})
		require.NoError(t, err)
	}
	f.db.clock = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.payments.Record(ctx, f.guest, PaymentInput{ReservationID: res.ID, Amount: decimal.NewFromInt(99), Method: "Cash"})
	require.NoError(t, err)

	got, err := f.payments.ListForPeriod(ctx, f.employee, model.Period{Year: 2024, Month: time.March})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "31", got[0].Amount.String(), "newest first")
	assert.Equal(t, "Alice", got[0].GuestName)
	assert.Equal(t, "Deluxe", got[0].RoomType)
	assert.Equal(t, model.StatusPending, got[0].Status)

	all, err := f.payments.List(ctx, f.employee)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = f.payments.List(ctx, f.guest)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		month, year string
		want        *model.Period
		err         error
	}{
		{"", "", nil, nil},
		{"3", "", nil, nil},
		{"", "2024", nil, nil},
		{"3", "2024", &model.Period{Year: 2024, Month: time.March}, nil},
		{"12", "1999", &model.Period{Year: 1999, Month: time.December}, nil},
		{"13", "2024", nil, ErrInvalidPeriod},
		{"0", "2024", nil, ErrInvalidPeriod},
		{"march", "2024", nil, ErrInvalidPeriod},
		{"3", "24", nil, ErrInvalidPeriod},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.month, tt.year)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "%s/%s", tt.month, tt.year)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
