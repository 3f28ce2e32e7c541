package errs

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized     = errors.New("unauthorized access!")
	ErrIdentityMismatch = errors.New("unauthorized Access")
	ErrForbidden        = errors.New("forbidden message")
	ErrInvalidBody      = errors.New("invalid request body")
	ErrInvalidID        = errors.New("invalid ID")
	ErrInvalidStatus    = errors.New("invalid class status")
	ErrInvalidPrice     = errors.New("price must be positive and at most 999999.99")
	ErrEmailRequired    = errors.New("email is required")
	ErrClassIDRequired  = errors.New("classId is required")
	ErrDatabase         = errors.New("database error")
	ErrPayment          = errors.New("payment provider error")
	ErrJWT              = errors.New("JWT failure")
	ErrMail             = errors.New("error sending email")
	ErrQueue            = errors.New("queue error")
)

// Status returns the HTTP status a handler answers with for err.
// Anything not listed is an internal failure.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrIdentityMismatch):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrClassIDRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
