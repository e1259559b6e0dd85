package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/booking"
	"github.com/kontor-dev/kontor/internal/filter"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// Reporter loads records from the store and writes them as tables.
type Reporter struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewReporter creates a Reporter.
func NewReporter(store *ledger.Store, logger *slog.Logger) *Reporter {
	return &Reporter{store: store, logger: logger}
}

// Journal writes the journal entries matching expr.
func (r *Reporter) Journal(ctx context.Context, w io.Writer, expr string, width int) error {
	pred, err := filter.Parse(expr, JournalFields)
	if err != nil {
		return err
	}

	entries, err := r.store.ListJournalEntries(ctx)
	if err != nil {
		return err
	}
	return JournalTable(filter.Apply(entries, pred), width).Render(w)
}

// Bookings writes the bookings matching expr.
func (r *Reporter) Bookings(ctx context.Context, w io.Writer, expr string, width int) error {
	pred, err := filter.Parse(expr, BookingFields)
	if err != nil {
		return err
	}

	rows, err := r.bookingRows(ctx, ledger.BookingQuery{})
	if err != nil {
		return err
	}
	return BookingTable(filter.Apply(rows, pred), width).Render(w)
}

func (r *Reporter) bookingRows(ctx context.Context, q ledger.BookingQuery) ([]BookingRow, error) {
	tree, err := accounts.NewService(r.store, r.logger).LoadTree(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := r.store.ListBookings(ctx, q)
	if err != nil {
		return nil, err
	}

	rows := make([]BookingRow, len(bookings))
	for i, b := range bookings {
		acct, _ := tree.Get(b.AccountID)
		rows[i] = BookingRow{Booking: b, Account: acct.Name}
	}
	return rows, nil
}

// Virtual writes the virtual bookings matching expr.
func (r *Reporter) Virtual(ctx context.Context, w io.Writer, expr string, width int) error {
	pred, err := filter.Parse(expr, VirtualFields)
	if err != nil {
		return err
	}

	tree, err := accounts.NewService(r.store, r.logger).LoadTree(ctx)
	if err != nil {
		return err
	}
	vbs, err := r.store.ListVirtualBookings(ctx, ledger.VirtualQuery{})
	if err != nil {
		return err
	}

	rows := make([]VirtualRow, len(vbs))
	for i, v := range vbs {
		acct, _ := tree.Get(v.AccountID)
		rows[i] = VirtualRow{VirtualBooking: v, Account: acct.Name}
	}
	return VirtualTable(filter.Apply(rows, pred), width).Render(w)
}

// Entry writes one journal entry, its bookings and the value left to book.
func (r *Reporter) Entry(ctx context.Context, w io.Writer, entryID int64, width int) error {
	entry, err := r.store.GetJournalEntry(ctx, entryID)
	if err != nil {
		return err
	}
	rows, err := r.bookingRows(ctx, ledger.BookingQuery{JournalEntryID: entry.ID})
	if err != nil {
		return err
	}

	if err := JournalTable([]model.JournalEntry{entry}, width).Render(w); err != nil {
		return err
	}
	if err := BookingTable(rows, width).Render(w); err != nil {
		return err
	}

	bookings := make([]model.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = row.Booking
	}
	_, err = fmt.Fprintf(w, "Remaining %s\n", money(booking.Remaining(entry, bookings)))
	return err
}
