package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the computed price of a stay, shown back to the guest before
// anything is written.
type Quote struct {
	RoomType string          `json:"room_type"`
	CheckIn  time.Time       `json:"check_in"`
	CheckOut time.Time       `json:"check_out"`
	Nights   int             `json:"nights"`
	Rate     decimal.Decimal `json:"rate"`
	Total    decimal.Decimal `json:"total_price"`
}

// Receipt acknowledges a committed booking.  It is assembled from the
// written rows and never persisted itself.
type Receipt struct {
	ReservationID uint64            `json:"reservationId"`
	PaymentID     uint64            `json:"paymentId"`
	Username      string            `json:"username"`
	RoomType      string            `json:"room_type"`
	CheckIn       time.Time         `json:"check_in"`
	CheckOut      time.Time         `json:"check_out"`
	Guests        int               `json:"guests"`
	Nights        int               `json:"nights"`
	Rate          decimal.Decimal   `json:"rate"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	PaymentMethod string            `json:"payment_method"`
	Status        ReservationStatus `json:"status"`
	PaidAt        time.Time         `json:"paid_at"`
}
