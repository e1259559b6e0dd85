// Package commands implements the kontor command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "kontor",
		Short: "Bookkeeping for bank statements, invoices and VAT",
		Long: `kontor imports bank statements and invoices into a local database,
books the movements to a chart of accounts and reports account balances.

Example:
  kontor init
  kontor import journal statement.csv
  kontor book 3 Expenses:Office --value 12.50
  kontor auto-vat
  kontor show saldo VAT_IN 2020-01-01 2020-03-31`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default <dir>/kontor.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(a),
		newAccountCommand(a),
		newImportCommand(a),
		newBookCommand(a),
		newAutoVatCommand(a),
		newShowCommand(a),
		newSanitizeCommand(),
	)

	return rootCmd
}
