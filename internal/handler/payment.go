package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Payments is the payment ledger.
type Payments interface {
	Record(ctx context.Context, sess auth.Session, in service.PaymentInput) (model.Payment, error)
	List(ctx context.Context, sess auth.Session) ([]model.PaymentView, error)
	ListForPeriod(ctx context.Context, sess auth.Session, p model.Period) ([]model.PaymentView, error)
	Summarize(ctx context.Context, sess auth.Session, period *model.Period) (model.SalesSummary, error)
}

// PaymentHandler serves /api/payments.
type PaymentHandler struct {
	Ledger Payments
}

func NewPaymentHandler(l Payments) *PaymentHandler { return &PaymentHandler{Ledger: l} }

type paymentReq struct {
	ReservationID uint64  `json:"reservationId"`
	AmountPaid    numeric `json:"amountPaid"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Record stores a payment and moves its reservation to pending.
func (h *PaymentHandler) Record(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	var req paymentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	amount, ok, err := req.AmountPaid.decimal()
	switch {
	case req.ReservationID == 0 || !ok || strings.TrimSpace(req.PaymentMethod) == "":
		return fmt.Errorf("%w: reservationId, amountPaid and paymentMethod", service.ErrMissingField)
	case err != nil:
		return service.ErrInvalidAmount
	}
	p, err := h.Ledger.Record(c.Request().Context(), sess, service.PaymentInput{
		ReservationID: req.ReservationID,
		Amount:        amount,
		Method:        strings.TrimSpace(req.PaymentMethod),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Payment processed successfully",
		"paymentId": p.ID,
	})
}

// List returns every payment, newest first.
func (h *PaymentHandler) List(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	views, err := h.Ledger.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListForPeriod returns the payments taken in /:year/:month.
func (h *PaymentHandler) ListForPeriod(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	p, err := service.NewPeriod(c.Param("year"), c.Param("month"))
	if err != nil {
		return err
	}
	views, err := h.Ledger.ListForPeriod(c.Request().Context(), sess, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Summary aggregates payments and reservations, for ?month=&year= when
// both are given and for all time otherwise.
func (h *PaymentHandler) Summary(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	p, err := service.ParsePeriod(c.QueryParam("month"), c.QueryParam("year"))
	if err != nil {
		return err
	}
	sum, err := h.Ledger.Summarize(c.Request().Context(), sess, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
