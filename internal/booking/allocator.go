// Package booking allocates the value of journal entries to accounts.
package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// Allocator books journal entries to accounts.
type Allocator struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewAllocator creates an Allocator.
func NewAllocator(store *ledger.Store, logger *slog.Logger) *Allocator {
	return &Allocator{store: store, logger: logger}
}

// Request describes one booking.
type Request struct {
	JournalEntryID int64
	// Account is an account name or a path like "Expenses:Office".
	Account string
	// Value is the amount to book. When it is not set, the remaining value of
	// the entry is booked.
	Value   decimal.NullDecimal
	Comment string
	// Force allows booking more than the remaining value.
	Force bool
}

// Booked returns the sum of the magnitudes of bookings.
func Booked(bookings []model.Booking) decimal.Decimal {
	booked := decimal.Zero
	for _, b := range bookings {
		booked = booked.Add(b.Value.Abs())
	}
	return booked
}

// Remaining returns how much of entry's value is not yet covered by bookings.
// It is negative when the entry is overbooked.
func Remaining(entry model.JournalEntry, bookings []model.Booking) decimal.Decimal {
	return entry.Value.Abs().Sub(Booked(bookings))
}

// BookEntry books part or all of a journal entry to an account. Reading the
// existing bookings and writing the new one happen in one transaction.
//
// Without a value the remaining value is booked, as a positive amount. A given
// value is stored as is; its magnitude must not exceed the remaining value
// unless req.Force is set.
func (a *Allocator) BookEntry(ctx context.Context, req Request) (model.Booking, error) {
	if req.Value.Valid && req.Value.Decimal.IsZero() {
		return model.Booking{}, fmt.Errorf("booking value must not be zero: %w", apperrors.ErrValidation)
	}

	var booking model.Booking
	err := a.store.InTx(ctx, func(tx *ledger.Store) error {
		acct, err := accounts.NewService(tx, a.logger).Resolve(ctx, req.Account)
		if err != nil {
			return err
		}

		entry, err := tx.GetJournalEntry(ctx, req.JournalEntryID)
		if err != nil {
			return err
		}

		existing, err := tx.ListBookings(ctx, ledger.BookingQuery{JournalEntryID: entry.ID})
		if err != nil {
			return err
		}
		remaining := Remaining(entry, existing)

		value, err := allocate(remaining, req)
		if err != nil {
			return fmt.Errorf("journal entry %d: %w", entry.ID, err)
		}

		booking, err = tx.CreateBooking(ctx, model.Booking{
			AccountID:      acct.ID,
			JournalEntryID: entry.ID,
			Value:          value,
			Comment:        req.Comment,
		})
		if err != nil {
			return err
		}

		a.logger.Info("booking created",
			"id", booking.ID,
			"journal_entry_id", entry.ID,
			"account", acct.Name,
			"value", value.StringFixed(2),
			"remaining", remaining.Sub(value.Abs()).StringFixed(2),
			"forced", req.Force,
		)
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

func allocate(remaining decimal.Decimal, req Request) (decimal.Decimal, error) {
	if !remaining.IsPositive() && !req.Force {
		return decimal.Zero, apperrors.ErrAllocationExhausted
	}

	if !req.Value.Valid {
		if !remaining.IsPositive() {
			return decimal.Zero, fmt.Errorf("nothing remaining, give an explicit value to force a booking: %w", apperrors.ErrValidation)
		}
		return remaining, nil
	}

	value := req.Value.Decimal
	if value.Abs().GreaterThan(remaining) && !req.Force {
		return decimal.Zero, &apperrors.OverallocationError{Requested: value.Abs(), Remaining: remaining}
	}
	return value, nil
}
