package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/journal"
	"github.com/kontor-dev/kontor/internal/model"
)

// PostbankHeader is the column header of a Postbank (Germany) "Umsatzauskunft" export.
var PostbankHeader = []string{
	"Buchungsdatum",
	"Wertstellung",
	"Umsatzart",
	"Buchungsdetails",
	"Auftraggeber",
	"Empfänger",
	"Betrag (€)",
	"Saldo (€)",
}

const (
	pbNumFields  = 8
	pbColDate    = 0
	pbColDetails = 3
	pbColSender  = 4
	pbColRecv    = 5
	pbColAmount  = 6
	pbColBalance = 7
)

var pbDateFormats = []string{"2.1.2006", "02.01.2006"}

// PostbankParser parses Postbank CSV exports. The files are Windows-1252
// encoded, ';'-separated and start with a few lines of account information
// before the header row.
type PostbankParser struct{}

// Format returns the parser name.
func (p *PostbankParser) Format() string { return "postbank" }

// Parse reads a Postbank export. Rows after the header with fewer columns
// (the closing balance line) are skipped.
func (p *PostbankParser) Parse(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(charmap.Windows1252.NewDecoder().Reader(r))
	cr.Comma = journal.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var entries []model.JournalEntry
	headerSeen := false
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading postbank CSV: %w", err)
		}

		if !headerSeen {
			headerSeen = isPostbankHeader(rec)
			continue
		}
		if len(rec) < pbNumFields {
			continue
		}

		e, err := parsePostbankRow(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}

	if !headerSeen {
		return nil, fmt.Errorf("postbank header row not found: %w", apperrors.ErrValidation)
	}
	return entries, nil
}

func isPostbankHeader(rec []string) bool {
	if len(rec) < pbNumFields {
		return false
	}
	cells := make([]string, pbNumFields)
	for i := range cells {
		cells[i] = strings.TrimSpace(rec[i])
	}
	return slices.Equal(cells, PostbankHeader)
}

func parsePostbankRow(rec []string) (model.JournalEntry, error) {
	date, err := parsePostbankDate(rec[pbColDate])
	if err != nil {
		return model.JournalEntry{}, err
	}

	value, err := ParseGermanAmount(rec[pbColAmount])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing amount: %w", err)
	}

	balance := decimal.Zero
	if strings.TrimSpace(rec[pbColBalance]) != "" {
		balance, err = ParseGermanAmount(rec[pbColBalance])
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing balance: %w", err)
		}
	}

	return model.JournalEntry{
		Date:        date,
		Sender:      strings.TrimSpace(rec[pbColSender]),
		Receiver:    strings.TrimSpace(rec[pbColRecv]),
		Description: CleanSubject(rec[pbColDetails]),
		Value:       value,
		Balance:     balance,
	}, nil
}

func parsePostbankDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range pbDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q", s)
}

// ParseGermanAmount parses amounts like "-1.234,56 €" and rounds them to cents.
func ParseGermanAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("€", "", " ", "", "\u00a0", "", ".", "", ",", ".").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d.RoundBank(2), nil
}

var subjectNoise = strings.NewReplacer("Referenz NOTPROVIDED", "", "Verwendungszweck", "")

var markup = bluemonday.StrictPolicy()

// CleanSubject removes Postbank boilerplate and any markup from a booking
// text and collapses whitespace.
func CleanSubject(s string) string {
	s = html.UnescapeString(markup.Sanitize(subjectNoise.Replace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// Sanitize rewrites a Postbank export as a native statement file. With
// reverse, the oldest movement comes first.
func Sanitize(in io.Reader, out io.Writer, reverse bool) (int, error) {
	entries, err := (&PostbankParser{}).Parse(in)
	if err != nil {
		return 0, err
	}
	if reverse {
		entries = Reverse(entries)
	}
	if err := journal.WriteEntries(out, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
