package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// InvoiceExt is the extension of invoice files.
const InvoiceExt = ".yaml"

// DefaultInvoiceDateFormat is DD.MM.YYYY.
const DefaultInvoiceDateFormat = "02.01.2006"

// Keys names the invoice fields that hold the account, the amount and the date.
type Keys struct {
	Account string
	Amount  string
	Date    string
}

// InvoiceResult counts the outcome of an invoice import.
type InvoiceResult struct {
	Documents Result
	Invoices  int
}

// InvoiceImporter turns YAML invoices into virtual bookings.
type InvoiceImporter struct {
	store      *ledger.Store
	logger     *slog.Logger
	documents  *Importer
	dateFormat string
}

// NewInvoiceImporter creates an InvoiceImporter. Invoice dates are parsed with
// dateFormat, DefaultInvoiceDateFormat if empty.
func NewInvoiceImporter(store *ledger.Store, logger *slog.Logger, extractor Extractor, dateFormat string) *InvoiceImporter {
	if dateFormat == "" {
		dateFormat = DefaultInvoiceDateFormat
	}
	return &InvoiceImporter{
		store:      store,
		logger:     logger,
		documents:  NewImporter(store, logger, extractor),
		dateFormat: dateFormat,
	}
}

// Import first imports the PDF documents under root, then creates one virtual
// booking per invoice file in one transaction. The account named in the
// invoice is created as a top-level account if no account has that name. An
// invoice is linked to the document with the same base name.
func (ii *InvoiceImporter) Import(ctx context.Context, root string, flat bool, keys Keys) (InvoiceResult, error) {
	docs, err := ii.documents.Import(ctx, root, flat)
	if err != nil {
		return InvoiceResult{}, fmt.Errorf("importing documents: %w", err)
	}

	paths, err := Files(root, flat, InvoiceExt)
	if err != nil {
		return InvoiceResult{}, err
	}

	res := InvoiceResult{Documents: docs}
	err = ii.store.InTx(ctx, func(tx *ledger.Store) error {
		res.Invoices = 0
		for _, path := range paths {
			inv, err := readInvoice(path, keys, ii.dateFormat)
			if err != nil {
				return err
			}

			acct, err := ii.account(ctx, tx, inv.account)
			if err != nil {
				return fmt.Errorf("invoice %s: %w", path, err)
			}

			vb := model.VirtualBooking{
				AccountID: acct.ID,
				Date:      inv.date,
				Value:     inv.amount,
				Comment:   "invoice " + inv.id,
			}
			docPath := strings.TrimSuffix(path, filepath.Ext(path)) + PDFExt
			doc, err := tx.DocumentByPath(ctx, docPath)
			switch {
			case err == nil:
				vb.DocumentID = doc.ID
			case errors.Is(err, apperrors.ErrNotFound):
				ii.logger.Debug("invoice has no document", "path", path)
			default:
				return err
			}

			created, err := tx.CreateVirtualBooking(ctx, vb)
			if err != nil {
				return err
			}
			ii.logger.Debug("invoice imported", "id", inv.id, "virtual_booking_id", created.ID,
				"account", acct.Name, "value", created.Value.StringFixed(2))
			res.Invoices++
		}
		return nil
	})
	if err != nil {
		return InvoiceResult{}, err
	}

	ii.logger.Info("invoices imported", "root", root, "invoices", res.Invoices)
	return res, nil
}

func (ii *InvoiceImporter) account(ctx context.Context, tx *ledger.Store, name string) (model.Account, error) {
	svc := accounts.NewService(tx, ii.logger)
	acct, err := svc.Resolve(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		return svc.GetOrCreateRoot(ctx, name)
	}
	return acct, err
}

type invoice struct {
	id      string
	account string
	amount  decimal.Decimal
	date    time.Time
}

func readInvoice(path string, keys Keys, dateFormat string) (invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return invoice{}, fmt.Errorf("reading invoice: %w", err)
	}

	// Decoding into nodes keeps amounts as written, without a float round trip.
	var fields map[string]yaml.Node
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return invoice{}, fmt.Errorf("decoding invoice %s: %w", path, err)
	}

	get := func(key string) (string, error) {
		n, ok := fields[key]
		if !ok || n.Kind != yaml.ScalarNode || strings.TrimSpace(n.Value) == "" {
			return "", fmt.Errorf("invoice %s: missing %q: %w", path, key, apperrors.ErrValidation)
		}
		return strings.TrimSpace(n.Value), nil
	}

	inv := invoice{id: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	if n, ok := fields["id"]; ok && n.Kind == yaml.ScalarNode && n.Value != "" {
		inv.id = n.Value
	}

	if inv.account, err = get(keys.Account); err != nil {
		return invoice{}, err
	}

	amount, err := get(keys.Amount)
	if err != nil {
		return invoice{}, err
	}
	if inv.amount, err = decimal.NewFromString(amount); err != nil {
		return invoice{}, fmt.Errorf("invoice %s: amount %q: %w", path, amount, apperrors.ErrValidation)
	}

	date, err := get(keys.Date)
	if err != nil {
		return invoice{}, err
	}
	if inv.date, err = time.Parse(dateFormat, date); err != nil {
		return invoice{}, fmt.Errorf("invoice %s: date %q: %w", path, date, apperrors.ErrValidation)
	}

	return inv, nil
}
