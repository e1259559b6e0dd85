// Package accounts manages the chart of accounts: a forest of named accounts
// where sibling names are unique.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// PathSeparator separates account names in a path like "Expenses:Office".
const PathSeparator = ":"

// Service provides account creation and lookup on top of the ledger store.
type Service struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewService creates a Service. store may be bound to a transaction.
func NewService(store *ledger.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create adds an account called name below the account referenced by parentRef.
// An empty parentRef creates a top-level account.
func (s *Service) Create(ctx context.Context, name, parentRef string) (model.Account, error) {
	var parentID int64
	if parentRef != "" {
		parent, err := s.Resolve(ctx, parentRef)
		if err != nil {
			return model.Account{}, fmt.Errorf("resolving parent: %w", err)
		}
		parentID = parent.ID
	}
	return s.create(ctx, name, parentID)
}

func (s *Service) create(ctx context.Context, name string, parentID int64) (model.Account, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return model.Account{}, err
	}

	if _, err := s.store.FindAccount(ctx, name, parentID); err == nil {
		return model.Account{}, fmt.Errorf("account %q: %w", name, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return model.Account{}, err
	}

	acct, err := s.store.CreateAccount(ctx, model.Account{Name: name, ParentID: parentID})
	if err != nil {
		return model.Account{}, err
	}
	s.logger.Debug("account created", "id", acct.ID, "name", acct.Name, "parent_id", acct.ParentID)
	return acct, nil
}

// ValidateName reports whether name can be used as an account name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("account name is empty: %w", apperrors.ErrValidation)
	}
	if strings.Contains(name, PathSeparator) {
		return fmt.Errorf("account name %q contains %q: %w", name, PathSeparator, apperrors.ErrValidation)
	}
	return nil
}

// Resolve finds the account referenced by ref. ref is either a bare account name
// or a path of names from a top-level account, e.g. "Expenses:Office".
func (s *Service) Resolve(ctx context.Context, ref string) (model.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Account{}, fmt.Errorf("empty account reference: %w", apperrors.ErrValidation)
	}

	if strings.Contains(ref, PathSeparator) {
		var acct model.Account
		for _, name := range strings.Split(ref, PathSeparator) {
			next, err := s.store.FindAccount(ctx, strings.TrimSpace(name), acct.ID)
			if err != nil {
				return model.Account{}, fmt.Errorf("account path %q: %w", ref, err)
			}
			acct = next
		}
		return acct, nil
	}

	matches, err := s.store.AccountsByName(ctx, ref)
	if err != nil {
		return model.Account{}, err
	}
	switch len(matches) {
	case 0:
		return model.Account{}, fmt.Errorf("account %q: %w", ref, apperrors.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Account{}, fmt.Errorf("account %q matches %d accounts, use a path like Parent%sChild: %w",
			ref, len(matches), PathSeparator, apperrors.ErrAmbiguous)
	}
}

// GetOrCreateRoot returns the top-level account called name, creating it if needed.
func (s *Service) GetOrCreateRoot(ctx context.Context, name string) (model.Account, error) {
	acct, err := s.store.FindAccount(ctx, name, 0)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return model.Account{}, err
	}
	return s.create(ctx, name, 0)
}

// LoadTree reads all accounts and builds the account tree.
func (s *Service) LoadTree(ctx context.Context) (*Tree, error) {
	accts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return NewTree(accts), nil
}

// Seed creates the accounts described by nodes in one transaction. Accounts
// that already exist are kept. It returns the number of accounts created.
func (s *Service) Seed(ctx context.Context, nodes []Node) (int, error) {
	created := 0
	err := s.store.InTx(ctx, func(tx *ledger.Store) error {
		var err error
		created, err = seed(ctx, tx, s.logger, nodes, 0)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("accounts seeded", "created", created)
	return created, nil
}

func seed(ctx context.Context, tx *ledger.Store, logger *slog.Logger, nodes []Node, parentID int64) (int, error) {
	created := 0
	for _, n := range nodes {
		if err := ValidateName(n.Name); err != nil {
			return 0, err
		}

		acct, err := tx.FindAccount(ctx, n.Name, parentID)
		if errors.Is(err, apperrors.ErrNotFound) {
			acct, err = tx.CreateAccount(ctx, model.Account{Name: n.Name, ParentID: parentID})
			if err != nil {
				return 0, err
			}
			logger.Debug("account created", "id", acct.ID, "name", acct.Name, "parent_id", parentID)
			created++
		} else if err != nil {
			return 0, err
		}

		sub, err := seed(ctx, tx, logger, n.Children, acct.ID)
		if err != nil {
			return 0, err
		}
		created += sub
	}
	return created, nil
}
