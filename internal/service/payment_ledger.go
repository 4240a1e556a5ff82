package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// PaymentLedger records payments and serves the payment read models.
type PaymentLedger struct {
	uow     UnitOfWork
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewPaymentLedger(uow UnitOfWork, log *zap.Logger, m *metrics.Metrics) *PaymentLedger {
	return &PaymentLedger{uow: uow, log: log, metrics: m}
}

// PaymentInput records money received for a reservation.
type PaymentInput struct {
	ReservationID uint64
	Amount        decimal.Decimal
	Method        string
}

// Record stores the payment and moves its reservation to pending in one
// transaction, so either both happen or neither does.
func (l *PaymentLedger) Record(ctx context.Context, sess auth.Session, in PaymentInput) (model.Payment, error) {
	if err := sess.Authorize(auth.OpRecordPayment); err != nil {
		return model.Payment{}, err
	}
	if in.ReservationID == 0 {
		return model.Payment{}, fmt.Errorf("%w: reservationId", ErrMissingField)
	}
	if strings.TrimSpace(in.Method) == "" {
		return model.Payment{}, fmt.Errorf("%w: paymentMethod", ErrMissingField)
	}
	if !in.Amount.IsPositive() {
		return model.Payment{}, ErrInvalidAmount
	}
	var p model.Payment
	err := l.uow.WithinTx(ctx, func(st repository.Stores) error {
		if _, err := st.Reservations.GetByID(ctx, in.ReservationID); err != nil {
			return err
		}
		var err error
		p, err = recordPayment(ctx, st, in)
		return err
	})
	if err != nil {
		return model.Payment{}, err
	}
	l.metrics.PaymentRecorded(p.Amount)
	l.log.Info("payment recorded",
		zap.Uint64("payment_id", p.ID),
		zap.Uint64("reservation_id", p.ReservationID),
		zap.String("amount", p.Amount.StringFixed(2)))
	return p, nil
}

// List returns every payment, newest first.
func (l *PaymentLedger) List(ctx context.Context, sess auth.Session) ([]model.PaymentView, error) {
	if err := sess.Authorize(auth.OpViewPayments); err != nil {
		return nil, err
	}
	return l.uow.Stores().Payments.List(ctx)
}

// ListForPeriod returns the payments dated within a calendar month, newest
// first.
func (l *PaymentLedger) ListForPeriod(ctx context.Context, sess auth.Session, p model.Period) ([]model.PaymentView, error) {
	if err := sess.Authorize(auth.OpViewPayments); err != nil {
		return nil, err
	}
	return l.uow.Stores().Payments.ListBetween(ctx, p.Start(), p.End())
}

// Summarize aggregates payments and reservations for a month, or over all
// time when period is nil.
func (l *PaymentLedger) Summarize(ctx context.Context, sess auth.Session, period *model.Period) (model.SalesSummary, error) {
	if err := sess.Authorize(auth.OpViewSales); err != nil {
		return model.SalesSummary{}, err
	}
	return l.uow.Stores().Payments.Summarize(ctx, period)
}

// ParsePeriod reads optional month and year query values.  A month is
// only applied when both are present; otherwise the result is nil, meaning
// all time.
func ParsePeriod(month, year string) (*model.Period, error) {
	month, year = strings.TrimSpace(month), strings.TrimSpace(year)
	if month == "" || year == "" {
		return nil, nil
	}
	p, err := NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// NewPeriod parses a year and month pair.
func NewPeriod(year, month string) (model.Period, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1000 || y > 9999 {
		return model.Period{}, ErrInvalidPeriod
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return model.Period{}, ErrInvalidPeriod
	}
	return model.Period{Year: y, Month: time.Month(m)}, nil
}

// recordPayment inserts a payment and marks its reservation pending using
// stores bound to the caller's transaction.
func recordPayment(ctx context.Context, st repository.Stores, in PaymentInput) (model.Payment, error) {
	if !in.Amount.IsPositive() {
		return model.Payment{}, ErrInvalidAmount
	}
	p := model.Payment{
		ReservationID: in.ReservationID,
		Amount:        in.Amount,
		Method:        strings.TrimSpace(in.Method),
	}
	if err := st.Payments.Create(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	if err := st.Reservations.SetPending(ctx, in.ReservationID); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}
