package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/handler"
)

// RegisterAdmin registers the admin-only report and staff routes.
func RegisterAdmin(g *echo.Group, r *handler.ReportHandler, s *handler.EmployeeHandler) {
	g.GET("/reports/sales", r.Sales, allow(auth.OpViewSales))

	staff := g.Group("/employee", allow(auth.OpManageStaff))
	staff.GET("", s.List)
	staff.POST("", s.Create)
	staff.DELETE("/:id", s.Delete)
}
