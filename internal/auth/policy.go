package auth

import "github.com/iliyamo/hotel-reservation/internal/model"

// Operation names an action guarded by the policy.
type Operation string

const (
	OpViewCatalog         Operation = "catalog.view"
	OpQuote               Operation = "catalog.quote"
	OpUpdateRate          Operation = "catalog.update_rate"
	OpBook                Operation = "booking.commit"
	OpBookForOthers       Operation = "booking.commit_for_others"
	OpCreateReservation   Operation = "reservation.create"
	OpViewOwnReservations Operation = "reservation.view_own"
	OpListReservations    Operation = "reservation.list"
	OpConfirmReservation  Operation = "reservation.confirm"
	OpRecordPayment       Operation = "payment.record"
	OpViewPayments        Operation = "payment.view"
	OpViewSales           Operation = "report.sales"
	OpManageStaff         Operation = "staff.manage"
)

var (
	everyone = []model.Role{model.RoleGuest, model.RoleEmployee, model.RoleAdmin}
	staff    = []model.Role{model.RoleEmployee, model.RoleAdmin}
	admins   = []model.Role{model.RoleAdmin}
)

var policy = map[Operation][]model.Role{
	OpViewCatalog:         everyone,
	OpQuote:               everyone,
	OpBook:                everyone,
	OpCreateReservation:   everyone,
	OpViewOwnReservations: everyone,
	OpRecordPayment:       everyone,
	OpBookForOthers:       staff,
	OpListReservations:    staff,
	OpConfirmReservation:  staff,
	OpViewPayments:        staff,
	OpUpdateRate:          admins,
	OpViewSales:           admins,
	OpManageStaff:         admins,
}

// CanAccess reports whether role may perform op.  Unknown roles and
// unknown operations are denied.
func CanAccess(role model.Role, op Operation) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}
