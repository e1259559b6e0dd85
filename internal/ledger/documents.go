package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

// CreateDocument inserts a document. Paths are unique.
func (s *Store) CreateDocument(ctx context.Context, d model.Document) (model.Document, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO documents (content, path, hash) VALUES (?, ?, ?)`,
		d.Content, d.Path, d.Hash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Document{}, fmt.Errorf("document %s: %w", d.Path, apperrors.ErrDuplicate)
		}
		return model.Document{}, fmt.Errorf("inserting document %s: %w", d.Path, err)
	}

	d.ID, err = res.LastInsertId()
	if err != nil {
		return model.Document{}, fmt.Errorf("reading document id: %w", err)
	}
	return d, nil
}

// DocumentByPath returns the document stored under path.
func (s *Store) DocumentByPath(ctx context.Context, path string) (model.Document, error) {
	var d model.Document
	err := s.q.QueryRowContext(ctx,
		`SELECT id, content, path, hash FROM documents WHERE path = ?`, path,
	).Scan(&d.ID, &d.Content, &d.Path, &d.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, fmt.Errorf("document %s: %w", path, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("getting document %s: %w", path, err)
	}
	return d, nil
}

// CountDocuments returns the number of stored documents.
func (s *Store) CountDocuments(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
