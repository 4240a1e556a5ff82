package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Catalog is the room and meal catalogue.
type Catalog interface {
	ListRoomCategories(ctx context.Context, sess auth.Session) ([]model.RoomCategory, error)
	UpdateRate(ctx context.Context, sess auth.Session, roomType, rawRate string) (decimal.Decimal, error)
	ListMeals(ctx context.Context, sess auth.Session) ([]model.MealItem, error)
	ListMealsForCategory(ctx context.Context, sess auth.Session, categoryID uint64) ([]model.MealItem, error)
}

// Purger drops cached catalogue responses.
type Purger interface {
	Purge(ctx context.Context) error
}

// CatalogHandler serves /api/rooms and /api/food.
type CatalogHandler struct {
	Catalog Catalog
	Cache   Purger
	Log     *zap.Logger
}

func NewCatalogHandler(cat Catalog, cache Purger, log *zap.Logger) *CatalogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogHandler{Catalog: cat, Cache: cache, Log: log}
}

// ListRooms returns every room category.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	rooms, err := h.Catalog.ListRoomCategories(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

type rateReq struct {
	Price numeric `json:"price"`
}

// UpdateRate changes the nightly rate of the category named in the path
// and purges the cached catalogue.
func (h *CatalogHandler) UpdateRate(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	var req rateReq
	if err := bind(c, &req); err != nil {
		return err
	}
	roomType := c.Param("type")
	rate, err := h.Catalog.UpdateRate(c.Request().Context(), sess, roomType, string(req.Price))
	if err != nil {
		return err
	}
	if h.Cache != nil {
		if err := h.Cache.Purge(c.Request().Context()); err != nil {
			h.Log.Warn("catalog cache purge failed", zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Price updated successfully",
		"room_type": roomType,
		"new_price": rate,
	})
}

// ListMeals returns the whole meal catalogue.
func (h *CatalogHandler) ListMeals(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	meals, err := h.Catalog.ListMeals(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meals)
}

// ListRoomMeals returns the meals offered with one room category.
func (h *CatalogHandler) ListRoomMeals(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	meals, err := h.Catalog.ListMealsForCategory(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meals)
}
