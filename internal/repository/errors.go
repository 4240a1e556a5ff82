// Package repository defines the store interfaces used by the services and
// their MySQL implementations, together with the sentinel errors the
// handlers translate into HTTP statuses.  ErrNotFound, ErrConflict and
// ErrForbidden are the roots; the entity specific sentinels wrap them so
// callers can match either level with errors.Is.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a referenced row does not exist.  Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with existing state, such
// as a duplicate unique key.  Handlers translate it into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller may not act on a resource.
// Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

var (
	ErrCategoryNotFound    = fmt.Errorf("room category %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
	ErrTokenNotFound       = fmt.Errorf("refresh token %w", ErrNotFound)
	ErrUsernameExists      = fmt.Errorf("username already exists: %w", ErrConflict)
	ErrAccountInUse        = fmt.Errorf("account still referenced by reservations: %w", ErrConflict)
)

// isDuplicateKey reports whether err is a MySQL 1062 duplicate entry error.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isRowReferenced reports whether err is a MySQL 1451 foreign key error
// raised when deleting a parent row.
func isRowReferenced(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1451
}

// isMissingParent reports whether err is a MySQL 1452 foreign key error
// raised when inserting a row whose parent does not exist.
func isMissingParent(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1452
}
