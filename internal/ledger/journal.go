package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

const journalColumns = `id, date, sender, receiver, description, value, balance, imported_at, document_id`

// CreateJournalEntry inserts a journal entry and returns it with its new ID.
func (s *Store) CreateJournalEntry(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO journal_entries (date, sender, receiver, description, value, balance, imported_at, document_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		formatDate(e.Date), e.Sender, e.Receiver, e.Description,
		e.Value.String(), e.Balance.String(),
		e.ImportedAt.UTC().Format(timestampFormat), nullID(e.DocumentID),
	)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("inserting journal entry: %w", err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("reading journal entry id: %w", err)
	}
	return e, nil
}

// GetJournalEntry returns the journal entry with the given ID.
func (s *Store) GetJournalEntry(ctx context.Context, id int64) (model.JournalEntry, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE id = ?`, id)
	e, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.JournalEntry{}, fmt.Errorf("journal entry %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("getting journal entry %d: %w", id, err)
	}
	return e, nil
}

// ListJournalEntries returns all journal entries in ID order.
func (s *Store) ListJournalEntries(ctx context.Context) ([]model.JournalEntry, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+journalColumns+` FROM journal_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanJournalEntry(sc scanner) (model.JournalEntry, error) {
	var e model.JournalEntry
	var date, importedAt string
	var doc sql.NullInt64
	if err := sc.Scan(&e.ID, &date, &e.Sender, &e.Receiver, &e.Description,
		&e.Value, &e.Balance, &importedAt, &doc); err != nil {
		return model.JournalEntry{}, err
	}

	var err error
	if e.Date, err = parseDate(date); err != nil {
		return model.JournalEntry{}, err
	}
	if e.ImportedAt, err = time.Parse(timestampFormat, importedAt); err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing imported_at %q: %w", importedAt, err)
	}
	e.DocumentID = doc.Int64
	return e, nil
}
