package accounts

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

const (
	numFields = 3
	colID     = 0
	colName   = 1
	colParent = 2
)

// Header is the first row of an accounts CSV file.
var Header = []string{"account_id", "account_name", "parent_id"}

// ReadAccounts reads an accounts CSV file (with header).
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes an accounts CSV file (with header).
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(acct.ID, 10)
	row[colName] = acct.Name
	if acct.ParentID != 0 {
		row[colParent] = strconv.FormatInt(acct.ParentID, 10)
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.ParseInt(record[colID], 10, 64)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[colID], err)
	}

	var parentID int64
	if record[colParent] != "" {
		parentID, err = strconv.ParseInt(record[colParent], 10, 64)
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing parent_id %q: %w", record[colParent], err)
		}
	}

	return model.Account{
		ID:       id,
		Name:     record[colName],
		ParentID: parentID,
	}, nil
}

// ImportCSV creates the accounts of an accounts CSV file in one transaction.
// IDs in the file only link children to parents; the store assigns new ones.
// Rows may appear in any order. Accounts that already exist are kept.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	rows, err := ReadAccounts(r)
	if err != nil {
		return 0, err
	}

	fileIDs := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if fileIDs[row.ID] {
			return 0, fmt.Errorf("account_id %d used twice: %w", row.ID, apperrors.ErrValidation)
		}
		fileIDs[row.ID] = true
	}
	for _, row := range rows {
		if row.ParentID != 0 && !fileIDs[row.ParentID] {
			return 0, fmt.Errorf("account %q: unknown parent_id %d: %w", row.Name, row.ParentID, apperrors.ErrValidation)
		}
	}

	tree := NewTree(rows)
	var nodes []Node
	var build func(id int64) []Node
	build = func(id int64) []Node {
		var out []Node
		for _, c := range tree.Children(id) {
			out = append(out, Node{Name: c.Name, Children: build(c.ID)})
		}
		return out
	}
	nodes = build(0)

	// Rows in a parent cycle are never reached from a root.
	if n := countNodes(nodes); n != len(rows) {
		return 0, fmt.Errorf("%d accounts are not reachable from a top-level account: %w", len(rows)-n, apperrors.ErrValidation)
	}

	return s.Seed(ctx, nodes)
}

func countNodes(nodes []Node) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}

// ExportCSV writes all accounts as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	accts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return err
	}
	return WriteAccounts(w, accts)
}

