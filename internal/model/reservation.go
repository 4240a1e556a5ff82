package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of stay dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD stay date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// ReservationStatus is the lifecycle state of a reservation.  A freshly
// inserted reservation has no status until its first payment arrives.
type ReservationStatus string

const (
	StatusNone      ReservationStatus = ""
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
)

// Reservation records a guest's stay request for a room category.
//
// Fields:
//  ID           – primary key identifier.
//  CheckIn      – first night of the stay.
//  CheckOut     – departure date.
//  Guests       – occupant count.
//  CategoryID   – booked room category.
//  AccountID    – owning account.
//  RateAtBooking – nightly rate of the category when the row was created;
//                 later rate changes never touch it.
//  Status       – StatusNone until paid, then pending, then confirmed.
//  CreatedAt    – creation timestamp.
type Reservation struct {
	ID            uint64            `json:"reservation_id"`   // reservation.reservation_id
	CheckIn       time.Time         `json:"check_in_date"`    // reservation.check_in_date
	CheckOut      time.Time         `json:"check_out_date"`   // reservation.check_out_date
	Guests        int               `json:"number_of_guests"` // reservation.number_of_guests
	CategoryID    uint64            `json:"room_id"`          // reservation.room_id
	AccountID     uint64            `json:"user_id"`          // reservation.user_id
	RateAtBooking decimal.Decimal   `json:"rate_at_booking"`  // reservation.rate_at_booking
	Status        ReservationStatus `json:"status"`           // reservation.status (nullable)
	CreatedAt     time.Time         `json:"created_at"`       // reservation.created_at
}

// ReservationView is the staff read model: a reservation joined with the
// guest's display name and the room type.
type ReservationView struct {
	Reservation
	GuestName string `json:"guest_name"`
	RoomType  string `json:"room_type"`
}
