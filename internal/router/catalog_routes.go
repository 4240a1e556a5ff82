package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// RegisterCatalog registers the room and meal routes.  GET responses are
// served through the response cache; the rate update purges it.
func RegisterCatalog(g *echo.Group, c *handler.CatalogHandler, b *handler.BookingHandler, cache *middleware.ResponseCache) {
	cached := cache.Middleware()

	g.GET("/rooms", c.ListRooms, allow(auth.OpViewCatalog), cached)
	g.GET("/rooms/available", b.Available, allow(auth.OpViewCatalog), cached)
	g.POST("/rooms/quote", b.Quote, allow(auth.OpQuote))
	g.PUT("/rooms/:type", c.UpdateRate, allow(auth.OpUpdateRate))
	g.GET("/rooms/:id/food", c.ListRoomMeals, allow(auth.OpViewCatalog), cached)
	g.GET("/food", c.ListMeals, allow(auth.OpViewCatalog), cached)
}
