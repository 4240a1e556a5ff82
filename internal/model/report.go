package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a calendar month in UTC.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Start returns the first instant of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month.
func (p Period) End() time.Time { return p.Start().AddDate(0, 1, 0) }

// SalesSummary aggregates the payment and reservation ledgers.  Payments
// are filtered by payment date while reservations are filtered by check-in
// date, so the two halves of a monthly summary can describe different
// bookings.
type SalesSummary struct {
	TotalPayments         int64           `json:"total_payments"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	TotalReservations     int64           `json:"total_reservations"`
	ConfirmedReservations int64           `json:"confirmed_reservations"`
	PendingReservations   int64           `json:"pending_reservations"`
}

// SalesReport is the admin sales screen: the summary plus the payments of
// the same period.
type SalesReport struct {
	Period   *Period       `json:"period,omitempty"`
	Summary  SalesSummary  `json:"summary"`
	Payments []PaymentView `json:"payments"`
}
