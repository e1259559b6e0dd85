package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one imported bank-statement line. It is never modified after import.
type JournalEntry struct {
	ID          int64
	Date        time.Time
	Sender      string
	Receiver    string
	Description string
	Value       decimal.Decimal // negative = outflow, positive = inflow
	Balance     decimal.Decimal // bank balance after this entry
	ImportedAt  time.Time
	DocumentID  int64 // 0 = no document
}

// Booking allocates part or all of a journal entry's value to an account.
type Booking struct {
	ID             int64
	AccountID      int64
	JournalEntryID int64
	Value          decimal.Decimal
	Comment        string
}

// VirtualBooking is an accrual posting that is not backed by a bank movement,
// e.g. an invoice that was issued but not paid yet.
type VirtualBooking struct {
	ID         int64
	AccountID  int64
	Date       time.Time
	Value      decimal.Decimal
	DocumentID int64 // 0 = no document
	Comment    string
}
