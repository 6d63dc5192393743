package company

import (
	"errors"
	"fmt"

	"carrental/internal/models"
)

// RentalError is the single domain error raised for every business rule violation.
type RentalError struct {
	Message string
}

func (e *RentalError) Error() string {
	return e.Message
}

// NewRentalError formats a business rule violation raised outside the collections.
func NewRentalError(format string, args ...interface{}) error {
	return rentalErrorf(format, args...)
}

func rentalErrorf(format string, args ...interface{}) error {
	return &RentalError{Message: fmt.Sprintf(format, args...)}
}

// StatusChangeError notifies that a customer crossed a loyalty tier boundary.
// The operation that produced it has already been applied.
type StatusChangeError struct {
	CustomerID int
	Status     models.CustomerStatus
}

func (e *StatusChangeError) Error() string {
	return fmt.Sprintf("You reached the %s status", e.Status)
}

// As lets errors.As match a StatusChangeError as a *RentalError target.
func (e *StatusChangeError) As(target interface{}) bool {
	if t, ok := target.(**RentalError); ok {
		*t = &RentalError{Message: e.Error()}
		return true
	}
	return false
}

func IsRentalError(err error) bool {
	var re *RentalError
	return errors.As(err, &re)
}

// AsStatusChange extracts a tier change notification from err.
func AsStatusChange(err error) (*StatusChangeError, bool) {
	var sc *StatusChangeError
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}
