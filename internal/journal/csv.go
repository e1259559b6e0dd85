package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/model"
)

const (
	// Delimiter separates the columns of a statement file.
	Delimiter = ';'
	// DateFormat is the day-first date layout of a statement file (D.M.YYYY).
	DateFormat = "2.1.2006"

	numFields  = 6
	colDate    = 0
	colSender  = 1
	colRecv    = 2
	colDesc    = 3
	colValue   = 4
	colBalance = 5
)

// NewReader returns a CSV reader configured for statement files.
func NewReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = numFields
	return cr
}

// NewWriter returns a CSV writer configured for statement files.
func NewWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	return cw
}

// ReadEntries reads all rows of a statement file. Statement files have no header.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := NewReader(r)

	var entries []model.JournalEntry
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading journal CSV: %w", err)
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes entries as a statement file.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := NewWriter(w)

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a JournalEntry to a CSV row.
func MarshalEntry(e model.JournalEntry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date.Format(DateFormat)
	row[colSender] = e.Sender
	row[colRecv] = e.Receiver
	row[colDesc] = e.Description
	row[colValue] = e.Value.StringFixed(2)
	row[colBalance] = e.Balance.StringFixed(2)
	return row
}

// UnmarshalEntry converts a CSV row to a JournalEntry. ID and ImportedAt are left zero.
func UnmarshalEntry(record []string) (model.JournalEntry, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(DateFormat, strings.TrimSpace(record[colDate]))
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	value, err := decimal.NewFromString(strings.TrimSpace(record[colValue]))
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing value %q: %w", record[colValue], err)
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(record[colBalance]))
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	return model.JournalEntry{
		Date:        date,
		Sender:      record[colSender],
		Receiver:    record[colRecv],
		Description: record[colDesc],
		Value:       value,
		Balance:     balance,
	}, nil
}
