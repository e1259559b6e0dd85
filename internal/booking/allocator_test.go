package booking

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/ledger/ledgertest"
	"github.com/kontor-dev/kontor/internal/logging"
	"github.com/kontor-dev/kontor/internal/model"
)

func value(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(ledgertest.Dec(s))
}

func setup(t *testing.T) (*ledger.Store, *Allocator) {
	t.Helper()
	store := ledgertest.New(t)
	return store, NewAllocator(store, logging.Discard())
}

func TestAutoAllocationBooksRemaining(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	ledgertest.Account(t, store, "Office", 0)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "-64.50")

	b, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "Office", Comment: "paper"})
	require.NoError(t, err)
	assert.Equal(t, "64.50", b.Value.StringFixed(2))
	assert.Equal(t, "paper", b.Comment)

	_, err = alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "Office"})
	assert.ErrorIs(t, err, apperrors.ErrAllocationExhausted)
}

func TestSplitBooking(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	ledgertest.Account(t, store, "Food", 0)
	ledgertest.Account(t, store, "Drinks", 0)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "-100.00")

	_, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "Food", Value: value("-30.25")})
	require.NoError(t, err)
	rest, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "Drinks"})
	require.NoError(t, err)
	assert.Equal(t, "69.75", rest.Value.StringFixed(2))

	bookings, err := store.ListBookings(ctx, ledger.BookingQuery{JournalEntryID: entry.ID})
	require.NoError(t, err)
	assert.True(t, Booked(bookings).Equal(entry.Value.Abs()), "bookings cover the entry exactly")
	assert.True(t, Remaining(entry, bookings).IsZero())
}

func TestOverallocationRejected(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	ledgertest.Account(t, store, "A", 0)
	ledgertest.Account(t, store, "B", 0)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "100.00")

	_, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "A", Value: value("60.00")})
	require.NoError(t, err)

	_, err = alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "B", Value: value("50.00")})
	require.ErrorIs(t, err, apperrors.ErrOverallocation)

	var oe *apperrors.OverallocationError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "50.00", oe.Requested.StringFixed(2))
	assert.Equal(t, "40.00", oe.Remaining.StringFixed(2))
	assert.Contains(t, err.Error(), "cannot book 50.00, only 40.00 remaining")

	// The rejected booking left nothing behind.
	bookings, err := store.ListBookings(ctx, ledger.BookingQuery{JournalEntryID: entry.ID})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	forced, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "B", Value: value("50.00"), Force: true})
	require.NoError(t, err)
	assert.Equal(t, "50.00", forced.Value.StringFixed(2))

	bookings, err = store.ListBookings(ctx, ledger.BookingQuery{JournalEntryID: entry.ID})
	require.NoError(t, err)
	assert.Equal(t, "-10.00", Remaining(entry, bookings).StringFixed(2))

	// Overbooked entries are exhausted for unforced bookings.
	_, err = alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "A", Value: value("1")})
	assert.ErrorIs(t, err, apperrors.ErrAllocationExhausted)
}

func TestNegativeManualValueCountsByMagnitude(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	ledgertest.Account(t, store, "A", 0)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "20.00")

	b, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "A", Value: value("-15")})
	require.NoError(t, err)
	assert.Equal(t, "-15.00", b.Value.StringFixed(2), "manual values keep their sign")

	_, err = alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "A", Value: value("-6")})
	assert.ErrorIs(t, err, apperrors.ErrOverallocation)
}

func TestBookEntryValidation(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	ledgertest.Account(t, store, "A", 0)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "10.00")

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"zero value", Request{JournalEntryID: entry.ID, Account: "A", Value: value("0")}, apperrors.ErrValidation},
		{"unknown account", Request{JournalEntryID: entry.ID, Account: "Nope"}, apperrors.ErrNotFound},
		{"unknown entry", Request{JournalEntryID: 999, Account: "A"}, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alloc.BookEntry(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestForceWithoutValueNeedsRemaining(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	ledgertest.Account(t, store, "A", 0)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "10.00")

	_, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "A"})
	require.NoError(t, err)

	_, err = alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "A", Force: true})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBookEntryByPath(t *testing.T) {
	ctx := context.Background()
	store, alloc := setup(t)
	income := ledgertest.Account(t, store, "Income", 0)
	expenses := ledgertest.Account(t, store, "Expenses", 0)
	ledgertest.Account(t, store, "Misc", income.ID)
	misc := ledgertest.Account(t, store, "Misc", expenses.ID)
	entry := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 1), "-5")

	_, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "Misc"})
	assert.ErrorIs(t, err, apperrors.ErrAmbiguous)

	b, err := alloc.BookEntry(ctx, Request{JournalEntryID: entry.ID, Account: "Expenses:Misc"})
	require.NoError(t, err)
	assert.Equal(t, misc.ID, b.AccountID)
}

func TestRemaining(t *testing.T) {
	entry := model.JournalEntry{Value: ledgertest.Dec("-64.50")}
	assert.Equal(t, "64.50", Remaining(entry, nil).StringFixed(2))

	bookings := []model.Booking{{Value: ledgertest.Dec("10")}, {Value: ledgertest.Dec("-4.50")}}
	assert.Equal(t, "14.50", Booked(bookings).StringFixed(2))
	assert.Equal(t, "50.00", Remaining(entry, bookings).StringFixed(2))
}
