package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/model"
)

// ValidationError describes a problem with one row of an import batch.
type ValidationError struct {
	Row         int // 1-based position in the batch
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Description)
}

// ValidateEntries checks a batch of entries before import.
func ValidateEntries(entries []model.JournalEntry) []ValidationError {
	var errs []ValidationError

	for i, e := range entries {
		row := i + 1

		if e.Date.IsZero() {
			errs = append(errs, ValidationError{Row: row, Description: "missing date"})
		}
		if !hasCents(e.Value) {
			errs = append(errs, ValidationError{
				Row:         row,
				Description: fmt.Sprintf("value %s has more than 2 decimal places", e.Value),
			})
		}
		if !hasCents(e.Balance) {
			errs = append(errs, ValidationError{
				Row:         row,
				Description: fmt.Sprintf("balance %s has more than 2 decimal places", e.Balance),
			})
		}
	}

	return errs
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// BalanceGap is a place where an entry's balance does not follow from the
// previous entry's balance and its own value.
type BalanceGap struct {
	Row      int
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

// CheckBalances compares every balance with the previous balance plus the
// entry's value. The first entry is not checked.
func CheckBalances(entries []model.JournalEntry) []BalanceGap {
	var gaps []BalanceGap
	for i := 1; i < len(entries); i++ {
		expected := entries[i-1].Balance.Add(entries[i].Value)
		if !expected.Equal(entries[i].Balance) {
			gaps = append(gaps, BalanceGap{
				Row:      i + 1,
				Expected: expected,
				Actual:   entries[i].Balance,
			})
		}
	}
	return gaps
}
