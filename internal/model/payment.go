package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money received against a reservation.  PaidAt is
// assigned by the database on insert.  A reservation may carry several
// payments.
type Payment struct {
	ID            uint64          `json:"payment_id"`     // payment.payment_id
	ReservationID uint64          `json:"reservation_id"` // payment.reservation_id
	Amount        decimal.Decimal `json:"amount_paid"`    // payment.amount_paid
	Method        string          `json:"payment_method"` // payment.payment_method
	PaidAt        time.Time       `json:"payment_date"`   // payment.payment_date
}

// PaymentView enriches a payment with guest, room and reservation status
// for the sales screens.
type PaymentView struct {
	Payment
	GuestName string            `json:"guest_name"`
	RoomType  string            `json:"room_type"`
	Status    ReservationStatus `json:"status"`
}
