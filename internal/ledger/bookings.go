package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/model"
)

// BookingQuery selects bookings. Zero fields do not filter.
type BookingQuery struct {
	JournalEntryID int64
	AccountIDs     []int64
	// ParentAccountID selects bookings whose account is a direct child of this account.
	ParentAccountID int64
	// From and To restrict the journal entry date to [From, To]; only applied when both are set.
	From, To time.Time
}

func (q BookingQuery) where() (string, []any) {
	var conds []string
	var args []any

	if q.JournalEntryID != 0 {
		conds = append(conds, "b.journal_entry_id = ?")
		args = append(args, q.JournalEntryID)
	}
	if len(q.AccountIDs) > 0 {
		conds = append(conds, "b.account_id IN ("+placeholders(len(q.AccountIDs))+")")
		for _, id := range q.AccountIDs {
			args = append(args, id)
		}
	}
	if q.ParentAccountID != 0 {
		conds = append(conds, "a.parent_id = ?")
		args = append(args, q.ParentAccountID)
	}
	if !q.From.IsZero() && !q.To.IsZero() {
		conds = append(conds, "j.date BETWEEN ? AND ?")
		args = append(args, formatDate(q.From), formatDate(q.To))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// CreateBooking inserts a booking and returns it with its new ID.
func (s *Store) CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO bookings (account_id, journal_entry_id, value, comment) VALUES (?, ?, ?, ?)`,
		b.AccountID, b.JournalEntryID, b.Value.String(), b.Comment,
	)
	if err != nil {
		return model.Booking{}, fmt.Errorf("inserting booking: %w", err)
	}

	b.ID, err = res.LastInsertId()
	if err != nil {
		return model.Booking{}, fmt.Errorf("reading booking id: %w", err)
	}
	return b, nil
}

// ListBookings returns the bookings selected by q in ID order.
func (s *Store) ListBookings(ctx context.Context, q BookingQuery) ([]model.Booking, error) {
	where, args := q.where()
	rows, err := s.q.QueryContext(ctx, `
		SELECT b.id, b.account_id, b.journal_entry_id, b.value, b.comment
		FROM bookings b
		JOIN journal_entries j ON j.id = b.journal_entry_id
		JOIN accounts a ON a.id = b.account_id`+where+`
		ORDER BY b.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.AccountID, &b.JournalEntryID, &b.Value, &b.Comment); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// SumBookings returns the sum of the values of the bookings selected by q.
// found is false when no booking matched.
func (s *Store) SumBookings(ctx context.Context, q BookingQuery) (sum decimal.Decimal, found bool, err error) {
	bookings, err := s.ListBookings(ctx, q)
	if err != nil {
		return decimal.Zero, false, err
	}
	for _, b := range bookings {
		sum = sum.Add(b.Value)
	}
	return sum, len(bookings) > 0, nil
}

// VirtualQuery selects virtual bookings. Zero fields do not filter.
type VirtualQuery struct {
	AccountIDs      []int64
	ParentAccountID int64
	// From and To restrict the virtual booking date to [From, To]; only applied when both are set.
	From, To time.Time
}

func (q VirtualQuery) where() (string, []any) {
	var conds []string
	var args []any

	if len(q.AccountIDs) > 0 {
		conds = append(conds, "v.account_id IN ("+placeholders(len(q.AccountIDs))+")")
		for _, id := range q.AccountIDs {
			args = append(args, id)
		}
	}
	if q.ParentAccountID != 0 {
		conds = append(conds, "a.parent_id = ?")
		args = append(args, q.ParentAccountID)
	}
	if !q.From.IsZero() && !q.To.IsZero() {
		conds = append(conds, "v.date BETWEEN ? AND ?")
		args = append(args, formatDate(q.From), formatDate(q.To))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// CreateVirtualBooking inserts a virtual booking and returns it with its new ID.
func (s *Store) CreateVirtualBooking(ctx context.Context, v model.VirtualBooking) (model.VirtualBooking, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO virtual_bookings (account_id, date, value, document_id, comment) VALUES (?, ?, ?, ?, ?)`,
		v.AccountID, formatDate(v.Date), v.Value.String(), nullID(v.DocumentID), v.Comment,
	)
	if err != nil {
		return model.VirtualBooking{}, fmt.Errorf("inserting virtual booking: %w", err)
	}

	v.ID, err = res.LastInsertId()
	if err != nil {
		return model.VirtualBooking{}, fmt.Errorf("reading virtual booking id: %w", err)
	}
	return v, nil
}

// ListVirtualBookings returns the virtual bookings selected by q in ID order.
func (s *Store) ListVirtualBookings(ctx context.Context, q VirtualQuery) ([]model.VirtualBooking, error) {
	where, args := q.where()
	rows, err := s.q.QueryContext(ctx, `
		SELECT v.id, v.account_id, v.date, v.value, v.document_id, v.comment
		FROM virtual_bookings v
		JOIN accounts a ON a.id = v.account_id`+where+`
		ORDER BY v.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying virtual bookings: %w", err)
	}
	defer rows.Close()

	var vbs []model.VirtualBooking
	for rows.Next() {
		var v model.VirtualBooking
		var date string
		var doc sql.NullInt64
		if err := rows.Scan(&v.ID, &v.AccountID, &date, &v.Value, &doc, &v.Comment); err != nil {
			return nil, fmt.Errorf("scanning virtual booking: %w", err)
		}
		if v.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		v.DocumentID = doc.Int64
		vbs = append(vbs, v)
	}
	return vbs, rows.Err()
}

// SumVirtualBookings returns the sum of the values of the virtual bookings selected by q.
func (s *Store) SumVirtualBookings(ctx context.Context, q VirtualQuery) (sum decimal.Decimal, found bool, err error) {
	vbs, err := s.ListVirtualBookings(ctx, q)
	if err != nil {
		return decimal.Zero, false, err
	}
	for _, v := range vbs {
		sum = sum.Add(v.Value)
	}
	return sum, len(vbs) > 0, nil
}
