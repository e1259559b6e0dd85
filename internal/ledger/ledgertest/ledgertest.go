// Package ledgertest provides a throwaway ledger store for tests.
package ledgertest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/logging"
	"github.com/kontor-dev/kontor/internal/model"
)

// New opens a migrated store in a temporary directory. It is closed when the test ends.
func New(t testing.TB) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(context.Background(), filepath.Join(t.TempDir(), "kontor.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Account creates an account below parentID (0 = root).
func Account(t testing.TB, store *ledger.Store, name string, parentID int64) model.Account {
	t.Helper()
	acct, err := store.CreateAccount(context.Background(), model.Account{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return acct
}

// Entry creates a journal entry with the given value on date.
func Entry(t testing.TB, store *ledger.Store, date time.Time, value string) model.JournalEntry {
	t.Helper()
	e, err := store.CreateJournalEntry(context.Background(), model.JournalEntry{
		Date:        date,
		Sender:      "Sender",
		Receiver:    "Receiver",
		Description: "statement line",
		Value:       Dec(value),
		Balance:     Dec("1000"),
		ImportedAt:  time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return e
}

// Booking books value of entry to acct without any allocation checks.
func Booking(t testing.TB, store *ledger.Store, acct model.Account, entry model.JournalEntry, value string) model.Booking {
	t.Helper()
	b, err := store.CreateBooking(context.Background(), model.Booking{
		AccountID:      acct.ID,
		JournalEntryID: entry.ID,
		Value:          Dec(value),
	})
	require.NoError(t, err)
	return b
}
