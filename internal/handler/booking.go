package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Booker runs the search, price and commit steps of a booking.
type Booker interface {
	Search(ctx context.Context, sess auth.Session, guests int) ([]model.RoomCategory, error)
	Quote(ctx context.Context, sess auth.Session, roomType, checkIn, checkOut string) (model.Quote, error)
	Commit(ctx context.Context, sess auth.Session, req service.BookingRequest) (model.Receipt, error)
}

// BookingHandler serves availability, quotes and the one-shot booking route.
type BookingHandler struct {
	Booking Booker
}

func NewBookingHandler(b Booker) *BookingHandler { return &BookingHandler{Booking: b} }

// Available lists the categories that fit ?guests=.
func (h *BookingHandler) Available(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	guests, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("guests")))
	if err != nil {
		return service.ErrInvalidGuests
	}
	rooms, err := h.Booking.Search(c.Request().Context(), sess, guests)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

type quoteReq struct {
	RoomType string `json:"roomType"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// Quote prices a stay without booking it.
func (h *BookingHandler) Quote(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	var req quoteReq
	if err := bind(c, &req); err != nil {
		return err
	}
	q, err := h.Booking.Quote(c.Request().Context(), sess, strings.TrimSpace(req.RoomType), req.CheckIn, req.CheckOut)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}

type bookingReq struct {
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Guests        int    `json:"guests"`
	RoomType      string `json:"roomType"`
	Username      string `json:"username"`
	PaymentMethod string `json:"paymentMethod"`
}

// Commit reserves, pays and returns the receipt in one call.
func (h *BookingHandler) Commit(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	var req bookingReq
	if err := bind(c, &req); err != nil {
		return err
	}
	rc, err := h.Booking.Commit(c.Request().Context(), sess, service.BookingRequest{
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Guests:        req.Guests,
		RoomType:      strings.TrimSpace(req.RoomType),
		Username:      strings.TrimSpace(req.Username),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Booking completed successfully",
		"receipt": rc,
	})
}
