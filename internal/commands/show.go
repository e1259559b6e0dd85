package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/filter"
	"github.com/kontor-dev/kontor/internal/id"
	"github.com/kontor-dev/kontor/internal/report"
	"github.com/kontor-dev/kontor/internal/saldo"
)

func newShowCommand(a *app) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show accounts, journal entries, bookings and balances",
	}
	showCmd.AddCommand(
		newShowAccountsCommand(a),
		newShowTableCommand(a, "journal", "Show journal entries", (*report.Reporter).Journal),
		newShowTableCommand(a, "bookings", "Show bookings", (*report.Reporter).Bookings),
		newShowTableCommand(a, "virtual", "Show virtual bookings", (*report.Reporter).Virtual),
		newShowEntryCommand(a),
		newShowSaldoCommand(a),
	)
	return showCmd
}

func newShowAccountsCommand(a *app) *cobra.Command {
	var (
		withSaldo   bool
		withVirtual bool
		asCSV       bool
		from, to    string
	)

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Show the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, out := cmd.Context(), cmd.OutOrStdout()
			if asCSV {
				return accounts.NewService(e.store, e.logger).ExportCSV(ctx, out)
			}

			var lines []string
			if withSaldo || withVirtual {
				q := saldo.Query{Start: start, End: end, WithVirtual: withVirtual}
				saldos, err := saldo.NewAggregator(e.store, e.logger).Report(ctx, q)
				if err != nil {
					return err
				}
				lines = report.SaldoTree(saldos)
			} else {
				tree, err := accounts.NewService(e.store, e.logger).LoadTree(ctx)
				if err != nil {
					return err
				}
				if lines, err = report.AccountTree(tree); err != nil {
					return err
				}
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSaldo, "saldo", false, "show the balance of every account")
	cmd.Flags().BoolVar(&withVirtual, "virtual", false, "include virtual bookings (implies --saldo)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print account_id,account_name,parent_id rows")
	cmd.Flags().StringVar(&from, "from", "", "first day of the balance period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of the balance period (YYYY-MM-DD)")

	return cmd
}

type tableFunc func(r *report.Reporter, ctx context.Context, w io.Writer, expr string, width int) error

func newShowTableCommand(a *app, use, short string, show tableFunc) *cobra.Command {
	var (
		expr  string
		width int
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			r := report.NewReporter(e.store, e.logger)
			return show(r, cmd.Context(), cmd.OutOrStdout(), expr, e.width(width))
		},
	}

	cmd.Flags().StringVar(&expr, "filter", "", "show only rows where column=value")
	cmd.Flags().IntVar(&width, "width", 0, "table width (default from config)")

	return cmd
}

func newShowEntryCommand(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "entry <entry-id>",
		Short: "Show a journal entry with its bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := id.Parse(args[0])
			if err != nil {
				return err
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			r := report.NewReporter(e.store, e.logger)
			return r.Entry(cmd.Context(), cmd.OutOrStdout(), entryID, e.width(width))
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "table width (default from config)")

	return cmd
}

func newShowSaldoCommand(a *app) *cobra.Command {
	var withVirtual bool

	cmd := &cobra.Command{
		Use:   "saldo <account> [start end]",
		Short: "Show the balance of an account",
		Long: `Show the balance of an account. For an account without children the
balance can be restricted to the bookings between start and end
(YYYY-MM-DD, inclusive). An account with children sums its direct children.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("accepts 1 or 3 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			q := saldo.Query{Account: args[0], WithVirtual: withVirtual}
			if len(args) == 3 {
				var err error
				if q.Start, q.End, err = parseRange(args[1], args[2]); err != nil {
					return err
				}
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			b, err := saldo.NewAggregator(e.store, e.logger).Get(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saldo is %s\n", b)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withVirtual, "virtual", false, "include virtual bookings")

	return cmd
}

func parseRange(from, to string) (start, end time.Time, err error) {
	if from != "" {
		if start, err = filter.ParseDate(from); err != nil {
			return
		}
	}
	if to != "" {
		end, err = filter.ParseDate(to)
	}
	return
}
