package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/documents"
	"github.com/kontor-dev/kontor/internal/importer"
	"github.com/kontor-dev/kontor/internal/journal"
)

func newImportCommand(a *app) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import journal entries, accounts, documents or invoices",
	}
	importCmd.AddCommand(
		newImportJournalCommand(a),
		newImportAccountsCommand(a),
		newImportDocumentsCommand(a),
		newImportInvoicesCommand(a),
	)
	return importCmd
}

func newImportJournalCommand(a *app) *cobra.Command {
	var (
		format  string
		reverse bool
	)

	cmd := &cobra.Command{
		Use:   "journal [file...]",
		Short: "Import bank statement CSV files",
		Long: `Import bank statement CSV files into the journal.

Without arguments every CSV file in <dir>/import/ is imported and then moved
to <dir>/import/processed/. Each file is imported in one transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportJournal(cmd.Context(), cmd.OutOrStdout(), a, args, format, reverse)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "statement format (default from config)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "import rows in reverse order")

	return cmd
}

func runImportJournal(ctx context.Context, out io.Writer, a *app, files []string, format string, reverse bool) error {
	e, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if format == "" {
		format = e.cfg.Import.Format
	}
	registry := importer.DefaultRegistry()
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("%w: unknown format %q (available: %s)",
			apperrors.ErrValidation, format, strings.Join(registry.Formats(), ", "))
	}

	inbox := len(files) == 0
	if inbox {
		scanned, err := importer.Scan(e.dir)
		if err != nil {
			return err
		}
		if len(scanned) == 0 {
			fmt.Fprintf(out, "No CSV files in %s\n", filepath.Join(e.dir, importer.ImportDir))
			return nil
		}
		for _, f := range scanned {
			files = append(files, f.Path)
		}
	}

	svc := journal.NewService(e.store, e.logger)
	for _, path := range files {
		fmt.Fprintf(out, "Importing CSV journal %s...\n", path)

		entries, err := importer.ParseFile(parser, path)
		if err != nil {
			return err
		}
		if reverse {
			entries = importer.Reverse(entries)
		}

		created, err := svc.Import(ctx, entries)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		fmt.Fprintf(out, "Imported %d entries.\n", len(created))

		if inbox {
			if err := importer.MarkProcessed(e.dir, filepath.Base(path)); err != nil {
				return err
			}
		}
	}
	return nil
}

func newImportAccountsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts <file>",
		Short: "Import a chart of accounts from YAML or CSV",
		Long: `Import a chart of accounts. Files ending in .csv are read as
account_id,account_name,parent_id rows; everything else is read as a YAML
tree of names. Accounts that already exist are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportAccounts(cmd.Context(), cmd.OutOrStdout(), a, args[0])
		},
	}
}

func runImportAccounts(ctx context.Context, out io.Writer, a *app, path string) error {
	e, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Fprintf(out, "Importing accounts from file %s...\n", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	svc := accounts.NewService(e.store, e.logger)
	var created int
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		created, err = svc.ImportCSV(ctx, f)
	} else {
		created, err = svc.ImportYAML(ctx, f)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %d accounts.\n", created)
	return nil
}

func newImportDocumentsCommand(a *app) *cobra.Command {
	var nested bool

	cmd := &cobra.Command{
		Use:   "documents <path>",
		Short: "Import PDF documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Importing documents from %s...\n", args[0])

			res, err := documents.NewImporter(e.store, e.logger, nil).Import(cmd.Context(), args[0], !nested)
			if err != nil {
				return err
			}
			printDocumentResult(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&nested, "nested", false, "read PDFs from the subdirectories of path")

	return cmd
}

func newImportInvoicesCommand(a *app) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "invoices <path> <account_key> <amount_key> <date_key>",
		Short: "Import YAML invoices as virtual bookings",
		Long: `Import invoices written as YAML files. The three keys name the
fields holding the account, the gross amount and the invoice date. PDF
documents next to the invoices are imported as well.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Import invoices from %s...\n", args[0])

			keys := documents.Keys{Account: args[1], Amount: args[2], Date: args[3]}
			ii := documents.NewInvoiceImporter(e.store, e.logger, nil, e.cfg.Invoices.DateFormat)
			res, err := ii.Import(cmd.Context(), args[0], flat, keys)
			if err != nil {
				return err
			}
			printDocumentResult(out, res.Documents)
			fmt.Fprintf(out, "Imported %d invoices.\n", res.Invoices)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "invoices lie directly in path instead of its subdirectories")

	return cmd
}

func printDocumentResult(out io.Writer, res documents.Result) {
	fmt.Fprintf(out, "Imported %d documents (%d unchanged, %d changed since last import).\n",
		res.Imported, res.Unchanged, res.Mismatched)
}
