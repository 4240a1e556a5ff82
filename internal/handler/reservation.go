package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Reservations is the reservation ledger.
type Reservations interface {
	Create(ctx context.Context, sess auth.Session, in service.ReservationInput) (model.Reservation, error)
	Confirm(ctx context.Context, sess auth.Session, id uint64) error
	List(ctx context.Context, sess auth.Session, q service.Search) ([]model.ReservationView, error)
	ListMine(ctx context.Context, sess auth.Session) ([]model.ReservationView, error)
}

// ReservationHandler serves /api/reservations and /api/my-reservations.
type ReservationHandler struct {
	Ledger Reservations
}

func NewReservationHandler(l Reservations) *ReservationHandler {
	return &ReservationHandler{Ledger: l}
}

type reservationReq struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests"`
	RoomType string `json:"roomType"`
	Username string `json:"username"`
}

// Create inserts a reservation and reports the rate it was booked at.
func (h *ReservationHandler) Create(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	var req reservationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.Ledger.Create(c.Request().Context(), sess, service.ReservationInput{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
		RoomType: strings.TrimSpace(req.RoomType),
		Username: strings.TrimSpace(req.Username),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "Reservation created successfully",
		"reservationId": r.ID,
		"roomPrice":     r.RateAtBooking,
	})
}

// List returns every reservation, optionally filtered with
// ?by=reservation_id|guest_name&q=.
func (h *ReservationHandler) List(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	views, err := h.Ledger.List(c.Request().Context(), sess, service.Search{
		By:    strings.TrimSpace(c.QueryParam("by")),
		Query: c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListMine returns the caller's own reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	views, err := h.Ledger.ListMine(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Confirm marks a reservation confirmed.  Confirming twice succeeds.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Ledger.Confirm(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation confirmed successfully"})
}
