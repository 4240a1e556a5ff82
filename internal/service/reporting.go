package service

import (
	"context"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReportingService composes the sales report from the two ledgers.  It
// keeps no state and recomputes on every call.
type ReportingService struct {
	uow UnitOfWork
}

func NewReportingService(uow UnitOfWork) *ReportingService { return &ReportingService{uow: uow} }

// Sales returns the summary and the payment list for a month, or for all
// time when period is nil.
func (r *ReportingService) Sales(ctx context.Context, sess auth.Session, period *model.Period) (model.SalesReport, error) {
	if err := sess.Authorize(auth.OpViewSales); err != nil {
		return model.SalesReport{}, err
	}
	st := r.uow.Stores()
	summary, err := st.Payments.Summarize(ctx, period)
	if err != nil {
		return model.SalesReport{}, err
	}
	var payments []model.PaymentView
	if period == nil {
		payments, err = st.Payments.List(ctx)
	} else {
		payments, err = st.Payments.ListBetween(ctx, period.Start(), period.End())
	}
	if err != nil {
		return model.SalesReport{}, err
	}
	return model.SalesReport{Period: period, Summary: summary, Payments: payments}, nil
}
