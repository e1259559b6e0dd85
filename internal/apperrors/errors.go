package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a referenced account, journal entry or document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate indicates that a record with the same identity already exists.
var ErrDuplicate = errors.New("already exists")

// ErrAmbiguous indicates that an account name matches more than one account.
var ErrAmbiguous = errors.New("ambiguous")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAllocationExhausted indicates that a journal entry has no value left to be booked.
var ErrAllocationExhausted = errors.New("no remaining value to be booked")

// ErrOverallocation indicates that a booking would exceed the remaining value of its entry.
var ErrOverallocation = errors.New("overallocation")

// OverallocationError carries the requested and the remaining value of a rejected booking.
type OverallocationError struct {
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverallocationError) Error() string {
	return fmt.Sprintf("cannot book %s, only %s remaining", e.Requested.StringFixed(2), e.Remaining.StringFixed(2))
}

// Is makes errors.Is(err, ErrOverallocation) match.
func (e *OverallocationError) Is(target error) bool {
	return target == ErrOverallocation
}
