package utils

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError reports malformed or missing input before any state is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InsufficientCreditError blocks booking creation; the message carries both
// amounts so the caller can surface them as-is.
type InsufficientCreditError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("Insufficient credit. Available: %s, Requested: %s",
		e.Available.String(), e.Requested.String())
}

func IsInsufficientCreditError(err error) bool {
	var ice *InsufficientCreditError
	return errors.As(err, &ice)
}
