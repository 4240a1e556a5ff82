package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/handler"
)

// RegisterReservations registers the booking workflow and the reservation
// ledger routes.  Booking on behalf of another guest is checked by the
// services, since it depends on the request body.
func RegisterReservations(g *echo.Group, b *handler.BookingHandler, r *handler.ReservationHandler) {
	g.POST("/bookings", b.Commit, allow(auth.OpBook))
	g.POST("/reservations", r.Create, allow(auth.OpCreateReservation))
	g.GET("/reservations", r.List, allow(auth.OpListReservations))
	g.GET("/my-reservations", r.ListMine, allow(auth.OpViewOwnReservations))
	g.PUT("/reservations/:id/confirm", r.Confirm, allow(auth.OpConfirmReservation))
}
