package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo is the MySQL reservation ledger.  Rows are inserted
// without a status; a payment moves them to pending and staff move them to
// confirmed.  Reservations are never deleted.  Stay dates are stored as
// DATE columns and read back in UTC.
type ReservationRepo struct {
	db DBTX
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db DBTX) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `reservation_id, check_in_date, check_out_date, number_of_guests, room_id, user_id, rate_at_booking, status, created_at`

const reservationViewQuery = `SELECT r.reservation_id, r.check_in_date, r.check_out_date, r.number_of_guests,
 r.room_id, r.user_id, r.rate_at_booking, r.status, r.created_at, u.fullname, rt.room_type
FROM reservation r
JOIN users u ON u.user_id = r.user_id
JOIN room_tbl rt ON rt.room_id = r.room_id`

// Create inserts the reservation with a NULL status and then reads the row
// back so the caller receives the database defaults.  CategoryID,
// AccountID and RateAtBooking must be set.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservation (check_in_date, check_out_date, number_of_guests, room_id, user_id, rate_at_booking) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.CheckIn.Format(model.DateLayout), res.CheckOut.Format(model.DateLayout),
		res.Guests, res.CategoryID, res.AccountID, res.RateAtBooking)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*res = stored
	return nil
}

// GetByID returns a reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservation WHERE reservation_id = ?`, id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ErrReservationNotFound
	}
	return res, err
}

// SetPending marks a paid reservation as pending.  A confirmed reservation
// keeps its status so the transition never goes backwards.
func (r *ReservationRepo) SetPending(ctx context.Context, id uint64) error {
	const q = `UPDATE reservation SET status = CASE WHEN status = 'confirmed' THEN status ELSE 'pending' END WHERE reservation_id = ?`
	return r.updateStatus(ctx, q, id)
}

// Confirm marks the reservation as confirmed.  Confirming twice succeeds
// because the connection counts matched rows.
func (r *ReservationRepo) Confirm(ctx context.Context, id uint64) error {
	return r.updateStatus(ctx, `UPDATE reservation SET status = 'confirmed' WHERE reservation_id = ?`, id)
}

func (r *ReservationRepo) updateStatus(ctx context.Context, q string, id uint64) error {
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// List returns every reservation with guest name and room type, latest
// check-in first.
func (r *ReservationRepo) List(ctx context.Context) ([]model.ReservationView, error) {
	return r.queryViews(ctx, reservationViewQuery+` ORDER BY r.check_in_date DESC, r.reservation_id DESC`)
}

// ListByAccount returns the reservations owned by one account, latest
// check-in first.
func (r *ReservationRepo) ListByAccount(ctx context.Context, accountID uint64) ([]model.ReservationView, error) {
	return r.queryViews(ctx, reservationViewQuery+` WHERE r.user_id = ? ORDER BY r.check_in_date DESC, r.reservation_id DESC`, accountID)
}

func (r *ReservationRepo) queryViews(ctx context.Context, q string, args ...any) ([]model.ReservationView, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ReservationView{}
	for rows.Next() {
		var (
			v      model.ReservationView
			status sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.CheckIn, &v.CheckOut, &v.Guests, &v.CategoryID, &v.AccountID,
			&v.RateAtBooking, &status, &v.CreatedAt, &v.GuestName, &v.RoomType); err != nil {
			return nil, err
		}
		v.Status = model.ReservationStatus(status.String)
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanReservation(s rowScanner) (model.Reservation, error) {
	var (
		res    model.Reservation
		status sql.NullString
	)
	err := s.Scan(&res.ID, &res.CheckIn, &res.CheckOut, &res.Guests, &res.CategoryID, &res.AccountID,
		&res.RateAtBooking, &status, &res.CreatedAt)
	res.Status = model.ReservationStatus(status.String)
	return res, err
}
