package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Reports builds sales reports.
type Reports interface {
	Sales(ctx context.Context, sess auth.Session, period *model.Period) (model.SalesReport, error)
}

// ReportHandler serves /api/reports.
type ReportHandler struct {
	Reports Reports
}

func NewReportHandler(r Reports) *ReportHandler { return &ReportHandler{Reports: r} }

// Sales returns the summary and payment list for ?month=&year=.
func (h *ReportHandler) Sales(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	p, err := service.ParsePeriod(c.QueryParam("month"), c.QueryParam("year"))
	if err != nil {
		return err
	}
	report, err := h.Reports.Sales(c.Request().Context(), sess, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
