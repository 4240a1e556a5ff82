// Package auth holds the per-request identity of a caller and the single
// authorization policy every entry point consults.
package auth

import (
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrForbidden is returned when a session's role may not perform an
// operation.
var ErrForbidden = errors.New("forbidden")

// Session is the authenticated caller of one request.  It is built by the
// JWT middleware from the access token and passed explicitly into every
// service call that acts on somebody's behalf.
type Session struct {
	AccountID uint64
	Username  string
	Role      model.Role
}

// Can reports whether the session may perform op.
func (s Session) Can(op Operation) bool { return CanAccess(s.Role, op) }

// Authorize returns ErrForbidden unless the session may perform op.
func (s Session) Authorize(op Operation) error {
	if !s.Can(op) {
		return ErrForbidden
	}
	return nil
}
