package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/handler"
)

// RegisterPayments registers the payment ledger routes.  /summary is
// registered before /:year/:month so it is never read as a year.
func RegisterPayments(g *echo.Group, p *handler.PaymentHandler) {
	g.POST("/payments", p.Record, allow(auth.OpRecordPayment))
	g.GET("/payments", p.List, allow(auth.OpViewPayments))
	g.GET("/payments/summary", p.Summary, allow(auth.OpViewPayments))
	g.GET("/payments/:year/:month", p.ListForPeriod, allow(auth.OpViewPayments))
}
