// Package queue carries reservation lifecycle events over RabbitMQ: a
// publisher used by the services after a commit and a background consumer
// that keeps an audit trail of bookings.
package queue

import (
	"time"

	"github.com/shopspring/decimal"
)

// Queue names.  Both queues are durable and use the default exchange.
const (
	QueueBooked    = "reservation.booked"
	QueueConfirmed = "reservation.confirmed"
)

// ReservationEvent is published after a booking commits or a reservation
// is confirmed.  It carries enough for consumers to log or notify without
// querying the primary database.
type ReservationEvent struct {
	Type          string          `json:"type"`
	ReservationID uint64          `json:"reservation_id"`
	PaymentID     uint64          `json:"payment_id,omitempty"`
	AccountID     uint64          `json:"user_id,omitempty"`
	Username      string          `json:"username,omitempty"`
	RoomType      string          `json:"room_type,omitempty"`
	CheckIn       string          `json:"check_in,omitempty"`
	CheckOut      string          `json:"check_out,omitempty"`
	Guests        int             `json:"guests,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	ConfirmedBy   string          `json:"confirmed_by,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
