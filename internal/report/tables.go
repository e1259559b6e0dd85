// Package report formats journal entries, bookings and accounts as text.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/filter"
	"github.com/kontor-dev/kontor/internal/id"
	"github.com/kontor-dev/kontor/internal/model"
	"github.com/kontor-dev/kontor/internal/render"
)

// JournalFields are the filterable columns of the journal table.
var JournalFields = []filter.Field[model.JournalEntry]{
	filter.ID("id", func(e model.JournalEntry) int64 { return e.ID }),
	filter.Date("date", func(e model.JournalEntry) time.Time { return e.Date }),
	filter.String("sender", func(e model.JournalEntry) string { return e.Sender }),
	filter.String("receiver", func(e model.JournalEntry) string { return e.Receiver }),
	filter.String("subject", func(e model.JournalEntry) string { return e.Description }),
	filter.Decimal("value", func(e model.JournalEntry) decimal.Decimal { return e.Value }),
	filter.Decimal("balance", func(e model.JournalEntry) decimal.Decimal { return e.Balance }),
}

// JournalTable lays out journal entries. The subject column takes the width
// left over by the fixed columns.
func JournalTable(entries []model.JournalEntry, width int) render.Table {
	width = render.ClampWidth(width)
	t := render.Table{Columns: []render.Column{
		{Title: "ID", Width: 3, Align: render.Zero},
		{Title: "Sender", Width: 15},
		{Title: "Receiver", Width: 15},
		{Title: "Subject", Width: width - 54},
		{Title: "Value", Width: 9, Align: render.Right},
		{Title: "Balance", Width: 9, Align: render.Right},
	}}
	for _, e := range entries {
		t.AddRow(
			id.Format(e.ID, 3),
			e.Sender,
			e.Receiver,
			e.Description,
			money(e.Value),
			money(e.Balance),
		)
	}
	return t
}

// BookingRow is a booking with its account name resolved.
type BookingRow struct {
	model.Booking
	Account string
}

// BookingFields are the filterable columns of the bookings table.
var BookingFields = []filter.Field[BookingRow]{
	filter.ID("id", func(b BookingRow) int64 { return b.ID }),
	filter.String("account", func(b BookingRow) string { return b.Account }),
	filter.ID("entry", func(b BookingRow) int64 { return b.JournalEntryID }),
	filter.String("comment", func(b BookingRow) string { return b.Comment }),
	filter.Decimal("value", func(b BookingRow) decimal.Decimal { return b.Value }),
}

// BookingTable lays out bookings.
func BookingTable(rows []BookingRow, width int) render.Table {
	width = render.ClampWidth(width)
	t := render.Table{Columns: []render.Column{
		{Title: "ID", Width: 3, Align: render.Zero},
		{Title: "Account", Width: 20},
		{Title: "Entry", Width: 5, Align: render.Zero},
		{Title: "Comment", Width: width - 39},
		{Title: "Value", Width: 9, Align: render.Right},
	}}
	for _, b := range rows {
		t.AddRow(id.Format(b.ID, 3), b.Account, id.Format(b.JournalEntryID, 5), b.Comment, money(b.Value))
	}
	return t
}

// VirtualRow is a virtual booking with its account name resolved.
type VirtualRow struct {
	model.VirtualBooking
	Account string
}

// VirtualFields are the filterable columns of the virtual bookings table.
var VirtualFields = []filter.Field[VirtualRow]{
	filter.ID("id", func(v VirtualRow) int64 { return v.ID }),
	filter.String("account", func(v VirtualRow) string { return v.Account }),
	filter.Date("date", func(v VirtualRow) time.Time { return v.Date }),
	filter.String("comment", func(v VirtualRow) string { return v.Comment }),
	filter.Decimal("value", func(v VirtualRow) decimal.Decimal { return v.Value }),
}

// VirtualTable lays out virtual bookings.
func VirtualTable(rows []VirtualRow, width int) render.Table {
	width = render.ClampWidth(width)
	t := render.Table{Columns: []render.Column{
		{Title: "ID", Width: 3, Align: render.Zero},
		{Title: "Account", Width: 20},
		{Title: "Comment", Width: width - 33},
		{Title: "Value", Width: 9, Align: render.Right},
	}}
	for _, v := range rows {
		t.AddRow(id.Format(v.ID, 3), v.Account, v.Comment, money(v.Value))
	}
	return t
}

func money(d decimal.Decimal) string {
	return d.RoundBank(2).StringFixed(2)
}
