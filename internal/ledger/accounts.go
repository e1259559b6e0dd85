package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

// CreateAccount inserts an account and returns it with its new ID.
func (s *Store) CreateAccount(ctx context.Context, acct model.Account) (model.Account, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO accounts (name, parent_id) VALUES (?, ?)`,
		acct.Name, nullID(acct.ParentID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, fmt.Errorf("account %q: %w", acct.Name, apperrors.ErrDuplicate)
		}
		return model.Account{}, fmt.Errorf("inserting account %q: %w", acct.Name, err)
	}

	acct.ID, err = res.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("reading account id: %w", err)
	}
	return acct, nil
}

// GetAccount returns the account with the given ID.
func (s *Store) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	row := s.q.QueryRowContext(ctx, `SELECT id, name, parent_id FROM accounts WHERE id = ?`, id)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("getting account %d: %w", id, err)
	}
	return acct, nil
}

// FindAccount returns the account called name directly below parentID (0 = root).
func (s *Store) FindAccount(ctx context.Context, name string, parentID int64) (model.Account, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT id, name, parent_id FROM accounts WHERE name = ? AND COALESCE(parent_id, 0) = ?`,
		name, parentID,
	)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("finding account %q: %w", name, err)
	}
	return acct, nil
}

// AccountsByName returns every account called name, in ID order.
func (s *Store) AccountsByName(ctx context.Context, name string) ([]model.Account, error) {
	return s.queryAccounts(ctx, `SELECT id, name, parent_id FROM accounts WHERE name = ? ORDER BY id`, name)
}

// ChildAccounts returns the direct children of parentID (0 = roots), in ID order.
func (s *Store) ChildAccounts(ctx context.Context, parentID int64) ([]model.Account, error) {
	return s.queryAccounts(ctx,
		`SELECT id, name, parent_id FROM accounts WHERE COALESCE(parent_id, 0) = ? ORDER BY id`,
		parentID,
	)
}

// ListAccounts returns all accounts in ID order.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.queryAccounts(ctx, `SELECT id, name, parent_id FROM accounts ORDER BY id`)
}

func (s *Store) queryAccounts(ctx context.Context, query string, args ...any) ([]model.Account, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accts []model.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accts = append(accts, acct)
	}
	return accts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(sc scanner) (model.Account, error) {
	var acct model.Account
	var parent sql.NullInt64
	if err := sc.Scan(&acct.ID, &acct.Name, &parent); err != nil {
		return model.Account{}, err
	}
	acct.ParentID = parent.Int64
	return acct, nil
}
