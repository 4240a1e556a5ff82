package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		op       Operation
		guest    bool
		employee bool
		admin    bool
	}{
		{OpViewCatalog, true, true, true},
		{OpQuote, true, true, true},
		{OpBook, true, true, true},
		{OpRecordPayment, true, true, true},
		{OpViewOwnReservations, true, true, true},
		{OpBookForOthers, false, true, true},
		{OpListReservations, false, true, true},
		{OpConfirmReservation, false, true, true},
		{OpViewPayments, false, true, true},
		{OpUpdateRate, false, false, true},
		{OpViewSales, false, false, true},
		{OpManageStaff, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.guest, CanAccess(model.RoleGuest, tt.op))
			assert.Equal(t, tt.employee, CanAccess(model.RoleEmployee, tt.op))
			assert.Equal(t, tt.admin, CanAccess(model.RoleAdmin, tt.op))
		})
	}
}

func TestCanAccessDeniesUnknown(t *testing.T) {
	assert.False(t, CanAccess(model.Role("owner"), OpViewCatalog))
	assert.False(t, CanAccess(model.RoleAdmin, Operation("nope")))
}

func TestSessionAuthorize(t *testing.T) {
	guest := Session{AccountID: 1, Username: "g", Role: model.RoleGuest}
	assert.NoError(t, guest.Authorize(OpBook))
	assert.ErrorIs(t, guest.Authorize(OpConfirmReservation), ErrForbidden)
}
