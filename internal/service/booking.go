package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// BookingWorkflow takes a guest from search criteria to a paid, pending
// reservation: capacity filtering, pricing, then reservation, payment and
// status change committed as one unit.
//
// There is no date overlap check.  Availability only means the category's
// capacity fits the party, so two guests may book the same category for
// the same nights.
type BookingWorkflow struct {
	uow     UnitOfWork
	pub     queue.Publisher
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewBookingWorkflow(uow UnitOfWork, pub queue.Publisher, log *zap.Logger, m *metrics.Metrics) *BookingWorkflow {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	return &BookingWorkflow{uow: uow, pub: pub, log: log, metrics: m, now: time.Now}
}

// BookingRequest is everything Commit needs.  Dates use YYYY-MM-DD.
type BookingRequest struct {
	CheckIn       string
	CheckOut      string
	Guests        int
	RoomType      string
	Username      string
	PaymentMethod string
}

// Search returns the categories whose capacity fits guests.  When none
// fits, it returns an empty list together with ErrCapacityExceeded.
func (w *BookingWorkflow) Search(ctx context.Context, sess auth.Session, guests int) ([]model.RoomCategory, error) {
	if err := sess.Authorize(auth.OpViewCatalog); err != nil {
		return nil, err
	}
	if guests < 1 {
		return nil, ErrInvalidGuests
	}
	all, err := w.uow.Stores().Catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	offer := FilterByCapacity(all, guests)
	if len(offer) == 0 {
		return offer, ErrCapacityExceeded
	}
	return offer, nil
}

// Quote prices a stay at the category's current rate without writing
// anything.
func (w *BookingWorkflow) Quote(ctx context.Context, sess auth.Session, roomType, checkIn, checkOut string) (model.Quote, error) {
	if err := sess.Authorize(auth.OpQuote); err != nil {
		return model.Quote{}, err
	}
	s, err := parseStay(checkIn, checkOut)
	if err != nil {
		return model.Quote{}, err
	}
	if strings.TrimSpace(roomType) == "" {
		return model.Quote{}, fmt.Errorf("%w: roomType", ErrMissingField)
	}
	cat, err := w.uow.Stores().Catalog.GetCategoryByType(ctx, roomType)
	if err != nil {
		return model.Quote{}, err
	}
	return quoteFor(cat, s), nil
}

// Commit validates the request and then, in one transaction, creates the
// reservation, records a payment of nights times rate and marks the
// reservation pending.  Any failure rolls all three back.  The booked
// event is published after the commit; a publish failure is only logged.
func (w *BookingWorkflow) Commit(ctx context.Context, sess auth.Session, req BookingRequest) (model.Receipt, error) {
	if err := sess.Authorize(auth.OpBook); err != nil {
		return model.Receipt{}, err
	}
	s, err := validateReservation(ReservationInput{
		CheckIn: req.CheckIn, CheckOut: req.CheckOut, Guests: req.Guests, RoomType: req.RoomType,
	})
	if err != nil {
		return model.Receipt{}, err
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return model.Receipt{}, fmt.Errorf("%w: paymentMethod", ErrMissingField)
	}
	username, err := bookingOwner(sess, req.Username)
	if err != nil {
		return model.Receipt{}, err
	}

	var rc model.Receipt
	err = w.uow.WithinTx(ctx, func(st repository.Stores) error {
		cat, err := st.Catalog.GetCategoryByType(ctx, req.RoomType)
		if err != nil {
			return err
		}
		res, err := createReservation(ctx, st, username, req.RoomType, req.Guests, s)
		if err != nil {
			return err
		}
		q := quoteFor(model.RoomCategory{Type: cat.Type, Rate: res.RateAtBooking}, s)
		pay, err := recordPayment(ctx, st, PaymentInput{
			ReservationID: res.ID,
			Amount:        q.Total,
			Method:        req.PaymentMethod,
		})
		if err != nil {
			return err
		}
		rc = model.Receipt{
			ReservationID: res.ID,
			PaymentID:     pay.ID,
			Username:      username,
			RoomType:      cat.Type,
			CheckIn:       res.CheckIn,
			CheckOut:      res.CheckOut,
			Guests:        res.Guests,
			Nights:        q.Nights,
			Rate:          q.Rate,
			TotalPrice:    q.Total,
			PaymentMethod: pay.Method,
			Status:        model.StatusPending,
			PaidAt:        pay.PaidAt,
		}
		return nil
	})
	if err != nil {
		w.metrics.BookingFailed()
		return model.Receipt{}, err
	}

	w.metrics.BookingCommitted(rc.TotalPrice)
	w.log.Info("booking committed",
		zap.Uint64("reservation_id", rc.ReservationID),
		zap.Uint64("payment_id", rc.PaymentID),
		zap.String("username", rc.Username),
		zap.String("total", rc.TotalPrice.StringFixed(2)))
	w.publishBooked(ctx, rc)
	return rc, nil
}

func (w *BookingWorkflow) publishBooked(ctx context.Context, rc model.Receipt) {
	ev := queue.ReservationEvent{
		Type:          queue.QueueBooked,
		ReservationID: rc.ReservationID,
		PaymentID:     rc.PaymentID,
		Username:      rc.Username,
		RoomType:      rc.RoomType,
		CheckIn:       rc.CheckIn.Format(model.DateLayout),
		CheckOut:      rc.CheckOut.Format(model.DateLayout),
		Guests:        rc.Guests,
		Amount:        rc.TotalPrice,
		PaymentMethod: rc.PaymentMethod,
		Status:        string(rc.Status),
		OccurredAt:    w.now().UTC(),
	}
	if err := w.pub.Publish(ctx, ev); err != nil {
		w.log.Warn("publish reservation booked failed", zap.Uint64("reservation_id", rc.ReservationID), zap.Error(err))
	}
}

// FilterByCapacity keeps the categories that can host guests.
func FilterByCapacity(categories []model.RoomCategory, guests int) []model.RoomCategory {
	out := []model.RoomCategory{}
	for _, c := range categories {
		if c.Fits(guests) {
			out = append(out, c)
		}
	}
	return out
}
