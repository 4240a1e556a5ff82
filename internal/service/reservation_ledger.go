package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ReservationLedger creates reservations, confirms them and serves the
// staff and guest listings.
type ReservationLedger struct {
	uow     UnitOfWork
	pub     queue.Publisher
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewReservationLedger(uow UnitOfWork, pub queue.Publisher, log *zap.Logger, m *metrics.Metrics) *ReservationLedger {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	return &ReservationLedger{uow: uow, pub: pub, log: log, metrics: m, now: time.Now}
}

// ReservationInput is a request to reserve a room category.  Username may
// name another account only for staff; empty means the caller.
type ReservationInput struct {
	CheckIn  string
	CheckOut string
	Guests   int
	RoomType string
	Username string
}

// Search selects how List filters its result.
type Search struct {
	By    string // "reservation_id" or "guest_name"; empty lists everything
	Query string
}

// Create inserts a reservation without a status and returns it with the
// category rate captured at booking time.
func (l *ReservationLedger) Create(ctx context.Context, sess auth.Session, in ReservationInput) (model.Reservation, error) {
	if err := sess.Authorize(auth.OpCreateReservation); err != nil {
		return model.Reservation{}, err
	}
	s, err := validateReservation(in)
	if err != nil {
		return model.Reservation{}, err
	}
	username, err := bookingOwner(sess, in.Username)
	if err != nil {
		return model.Reservation{}, err
	}
	return createReservation(ctx, l.uow.Stores(), username, in.RoomType, in.Guests, s)
}

// Confirm marks a reservation confirmed.  Confirming an already confirmed
// reservation succeeds and changes nothing.
func (l *ReservationLedger) Confirm(ctx context.Context, sess auth.Session, id uint64) error {
	if err := sess.Authorize(auth.OpConfirmReservation); err != nil {
		return err
	}
	if err := l.uow.Stores().Reservations.Confirm(ctx, id); err != nil {
		return err
	}
	l.metrics.ReservationConfirmed()
	ev := queue.ReservationEvent{
		Type:          queue.QueueConfirmed,
		ReservationID: id,
		Status:        string(model.StatusConfirmed),
		ConfirmedBy:   sess.Username,
		OccurredAt:    l.now().UTC(),
	}
	if err := l.pub.Publish(ctx, ev); err != nil {
		l.log.Warn("publish reservation confirmed failed", zap.Uint64("reservation_id", id), zap.Error(err))
	}
	return nil
}

// List returns every reservation, latest check-in first, optionally
// narrowed by a staff search.
func (l *ReservationLedger) List(ctx context.Context, sess auth.Session, q Search) ([]model.ReservationView, error) {
	if err := sess.Authorize(auth.OpListReservations); err != nil {
		return nil, err
	}
	all, err := l.uow.Stores().Reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	switch q.By {
	case "", "all":
		return all, nil
	case "reservation_id":
		return FilterByIDPrefix(all, q.Query), nil
	case "guest_name":
		return FilterByGuestName(all, q.Query), nil
	default:
		return nil, fmt.Errorf("%w: by must be reservation_id or guest_name", ErrValidation)
	}
}

// ListMine returns the caller's own reservations.
func (l *ReservationLedger) ListMine(ctx context.Context, sess auth.Session) ([]model.ReservationView, error) {
	if err := sess.Authorize(auth.OpViewOwnReservations); err != nil {
		return nil, err
	}
	return l.uow.Stores().Reservations.ListByAccount(ctx, sess.AccountID)
}

// FilterByIDPrefix keeps reservations whose id starts with prefix.
func FilterByIDPrefix(views []model.ReservationView, prefix string) []model.ReservationView {
	prefix = strings.TrimSpace(prefix)
	out := []model.ReservationView{}
	for _, v := range views {
		if strings.HasPrefix(strconv.FormatUint(v.ID, 10), prefix) {
			out = append(out, v)
		}
	}
	return out
}

// FilterByGuestName keeps reservations whose guest name contains text,
// ignoring case.
func FilterByGuestName(views []model.ReservationView, text string) []model.ReservationView {
	text = strings.ToLower(strings.TrimSpace(text))
	out := []model.ReservationView{}
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.GuestName), text) {
			out = append(out, v)
		}
	}
	return out
}

func validateReservation(in ReservationInput) (stay, error) {
	s, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return stay{}, err
	}
	if strings.TrimSpace(in.RoomType) == "" {
		return stay{}, fmt.Errorf("%w: roomType", ErrMissingField)
	}
	if in.Guests < 1 {
		return stay{}, ErrInvalidGuests
	}
	return s, nil
}

// bookingOwner resolves whose account a reservation is made for.
func bookingOwner(sess auth.Session, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || username == sess.Username {
		return sess.Username, nil
	}
	if err := sess.Authorize(auth.OpBookForOthers); err != nil {
		return "", err
	}
	return username, nil
}

// createReservation looks up the category and account and inserts the
// reservation with the category's current rate.  A party larger than the
// category's capacity is rejected with ErrCapacityExceeded.
func createReservation(ctx context.Context, st repository.Stores, username, roomType string, guests int, s stay) (model.Reservation, error) {
	cat, err := st.Catalog.GetCategoryByType(ctx, roomType)
	if err != nil {
		return model.Reservation{}, err
	}
	if !cat.Fits(guests) {
		return model.Reservation{}, ErrCapacityExceeded
	}
	acct, err := st.Accounts.GetByUsername(ctx, username)
	if err != nil {
		return model.Reservation{}, err
	}
	r := model.Reservation{
		CheckIn:       s.checkIn,
		CheckOut:      s.checkOut,
		Guests:        guests,
		CategoryID:    cat.ID,
		AccountID:     acct.ID,
		RateAtBooking: cat.Rate,
	}
	if err := st.Reservations.Create(ctx, &r); err != nil {
		return model.Reservation{}, err
	}
	return r, nil
}
