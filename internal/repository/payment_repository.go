package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// PaymentRepo is the MySQL payment ledger.  payment_date is assigned by the
// database on insert.  Several payments may reference one reservation.
type PaymentRepo struct {
	db DBTX
}

// NewPaymentRepo returns a PaymentRepo bound to db.
func NewPaymentRepo(db DBTX) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentViewQuery = `SELECT p.payment_id, p.reservation_id, p.amount_paid, p.payment_method, p.payment_date,
 u.fullname, rt.room_type, r.status
FROM payment p
JOIN reservation r ON r.reservation_id = p.reservation_id
JOIN users u ON u.user_id = r.user_id
JOIN room_tbl rt ON rt.room_id = r.room_id`

// Create inserts the payment and reads back the server assigned
// payment_date.  A missing reservation surfaces as ErrReservationNotFound
// through the foreign key.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payment (reservation_id, amount_paid, payment_method) VALUES (?, ?, ?)`,
		p.ReservationID, p.Amount, p.Method)
	if err != nil {
		if isMissingParent(err) {
			return ErrReservationNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT payment_date FROM payment WHERE payment_id = ?`, p.ID).Scan(&p.PaidAt)
}

// List returns all payments, newest first.
func (r *PaymentRepo) List(ctx context.Context) ([]model.PaymentView, error) {
	return r.queryViews(ctx, paymentViewQuery+` ORDER BY p.payment_date DESC, p.payment_id DESC`)
}

// ListBetween returns payments dated in [from, to), newest first.
func (r *PaymentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.PaymentView, error) {
	return r.queryViews(ctx,
		paymentViewQuery+` WHERE p.payment_date >= ? AND p.payment_date < ? ORDER BY p.payment_date DESC, p.payment_id DESC`,
		from, to)
}

// Summarize aggregates both ledgers.  With a period, payments are filtered
// by payment_date and reservations by check_in_date; without one the whole
// history is counted.  Empty ledgers yield zero values.
func (r *PaymentRepo) Summarize(ctx context.Context, period *model.Period) (model.SalesSummary, error) {
	payQ := `SELECT COUNT(*), COALESCE(SUM(amount_paid), 0) FROM payment`
	resQ := `SELECT COUNT(*), COALESCE(SUM(status = 'confirmed'), 0), COALESCE(SUM(status = 'pending'), 0) FROM reservation`
	var payArgs, resArgs []any
	if period != nil {
		payQ += ` WHERE payment_date >= ? AND payment_date < ?`
		payArgs = []any{period.Start(), period.End()}
		resQ += ` WHERE check_in_date >= ? AND check_in_date < ?`
		resArgs = []any{period.Start().Format(model.DateLayout), period.End().Format(model.DateLayout)}
	}
	var s model.SalesSummary
	if err := r.db.QueryRowContext(ctx, payQ, payArgs...).Scan(&s.TotalPayments, &s.TotalRevenue); err != nil {
		return model.SalesSummary{}, err
	}
	if err := r.db.QueryRowContext(ctx, resQ, resArgs...).Scan(
		&s.TotalReservations, &s.ConfirmedReservations, &s.PendingReservations); err != nil {
		return model.SalesSummary{}, err
	}
	return s, nil
}

func (r *PaymentRepo) queryViews(ctx context.Context, q string, args ...any) ([]model.PaymentView, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.PaymentView{}
	for rows.Next() {
		var (
			v      model.PaymentView
			status sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.ReservationID, &v.Amount, &v.Method, &v.PaidAt,
			&v.GuestName, &v.RoomType, &status); err != nil {
			return nil, err
		}
		v.Status = model.ReservationStatus(status.String)
		out = append(out, v)
	}
	return out, rows.Err()
}
