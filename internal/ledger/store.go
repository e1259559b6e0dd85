// Package ledger is the persistent store for accounts, journal entries, bookings,
// virtual bookings and documents. It is backed by SQLite.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = time.RFC3339
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the ledger repository. A Store handed to an InTx callback is bound to
// that transaction; every other Store runs each statement on its own.
type Store struct {
	db     *sql.DB
	q      dbtx
	tx     *sql.Tx
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path and migrates it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// One connection: a transaction must be the only user of the database while
	// it is open.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("database opened", "path", path)
	return &Store{db: db, q: db, path: path, logger: logger}, nil
}

// Close closes the database. It must not be called on a transaction-bound Store.
func (s *Store) Close() error {
	if s.tx != nil {
		return errors.New("close called inside a transaction")
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InTx runs fn inside a transaction. The transaction is committed if fn returns nil
// and rolled back otherwise (also on panic). Calling InTx on a transaction-bound
// Store joins the running transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	txStore := &Store{db: s.db, q: tx, tx: tx, path: s.path, logger: s.logger}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		s.logger.Debug("transaction rolled back", "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", s, err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
		strings.Contains(se.Error(), "UNIQUE constraint failed")
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
