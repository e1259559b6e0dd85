// Package journal imports and reads bank statement lines (journal entries).
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// Service provides business logic for journal entries.
type Service struct {
	store  *ledger.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a journal Service.
func NewService(store *ledger.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// Import validates entries and stores them in one transaction. All entries of
// one call share the same ImportedAt. Nothing is stored if any entry is invalid.
func (s *Service) Import(ctx context.Context, entries []model.JournalEntry) ([]model.JournalEntry, error) {
	if verrs := ValidateEntries(entries); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("%s: %w", strings.Join(msgs, "; "), apperrors.ErrValidation)
	}

	for _, gap := range CheckBalances(entries) {
		s.logger.Warn("balance does not match previous balance plus value",
			"row", gap.Row,
			"expected", gap.Expected.StringFixed(2),
			"actual", gap.Actual.StringFixed(2),
		)
	}

	importedAt := s.now().UTC().Truncate(time.Second)
	stored := make([]model.JournalEntry, 0, len(entries))

	err := s.store.InTx(ctx, func(tx *ledger.Store) error {
		for _, e := range entries {
			e.ImportedAt = importedAt
			created, err := tx.CreateJournalEntry(ctx, e)
			if err != nil {
				return err
			}
			s.logger.Debug("journal entry created",
				"id", created.ID,
				"date", created.Date.Format(time.DateOnly),
				"value", created.Value.StringFixed(2),
			)
			stored = append(stored, created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing journal entries: %w", err)
	}

	s.logger.Info("journal entries imported", "count", len(stored))
	return stored, nil
}

// Get returns the journal entry with the given ID.
func (s *Service) Get(ctx context.Context, id int64) (model.JournalEntry, error) {
	return s.store.GetJournalEntry(ctx, id)
}

// List returns all journal entries in ID order.
func (s *Service) List(ctx context.Context) ([]model.JournalEntry, error) {
	return s.store.ListJournalEntries(ctx)
}
