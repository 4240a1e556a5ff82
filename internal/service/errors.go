// Package service holds the hotel's business logic: the catalogue, the
// identity boundary, the reservation and payment ledgers, the booking
// workflow that ties them together and the sales reports built on top.
package service

import "errors"

// ErrValidation is the root of every input error.  Handlers translate it
// into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials is returned by Login and Refresh.  It is kept apart
// from ErrValidation because handlers answer it with 401.
var ErrInvalidCredentials = errors.New("invalid username or password")

// validationError is a message that matches ErrValidation under errors.Is.
type validationError string

func (e validationError) Error() string        { return string(e) }
func (e validationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrMissingField     error = validationError("missing required field")
	ErrInvalidDate      error = validationError("invalid date, expected YYYY-MM-DD")
	ErrInvalidGuests    error = validationError("guests must be a positive integer")
	ErrInvalidRate      error = validationError("price must be a positive amount with at most two decimals")
	ErrInvalidAmount    error = validationError("amount must be a positive number")
	ErrCapacityExceeded error = validationError("no room category fits the requested number of guests")
	ErrInvalidPeriod    error = validationError("month must be 1-12 and year a four digit number")
	ErrInvalidRole      error = validationError("unknown role")
)
