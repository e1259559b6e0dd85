package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/booking"
	"github.com/kontor-dev/kontor/internal/id"
)

func newBookCommand(a *app) *cobra.Command {
	var (
		value   string
		comment string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "book <entry-id> <account>",
		Short: "Book a journal entry to an account",
		Long: `Book a journal entry, or a part of it, to an account.

Without --value the remaining value of the entry is booked. An entry can
be split over several accounts by booking it more than once.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := id.Parse(args[0])
			if err != nil {
				return err
			}

			req := booking.Request{
				JournalEntryID: entryID,
				Account:        args[1],
				Comment:        comment,
				Force:          force,
			}
			if cmd.Flags().Changed("value") {
				v, err := decimal.NewFromString(value)
				if err != nil {
					return fmt.Errorf("%w: invalid value %q", apperrors.ErrValidation, value)
				}
				req.Value = decimal.NewNullDecimal(v)
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			b, err := booking.NewAllocator(e.store, e.logger).BookEntry(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s from entry %s to %s\n",
				b.Value.StringFixed(2), id.Format(b.JournalEntryID, 3), args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "amount to book (default: the remaining value)")
	cmd.Flags().StringVar(&comment, "comment", "", "booking comment")
	cmd.Flags().BoolVar(&force, "force", false, "allow booking more than the remaining value")

	return cmd
}

func newAutoVatCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto-vat [percentage vat_in_account vat_out_account]",
		Short: "Book the VAT share of every journal entry",
		Long: `Book the VAT share of every journal entry to the VAT accounts.

Inflows are booked to the incoming VAT account, outflows to the outgoing
one. Entries that already carry a VAT booking are skipped, so the command
can be run after every import. Without arguments the values from the
config are used.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("accepts 0 or 3 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			pct, vatIn, vatOut := e.cfg.VAT.Percentage, e.cfg.VAT.InAccount, e.cfg.VAT.OutAccount
			if len(args) == 3 {
				pct, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("%w: invalid percentage %q", apperrors.ErrValidation, args[0])
				}
				vatIn, vatOut = args[1], args[2]
			}

			summary, err := booking.NewAllocator(e.store, e.logger).AutoBookVat(cmd.Context(), pct, vatIn, vatOut)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked VAT for %d entries (%d already booked, %d without value).\n",
				summary.Booked, summary.Skipped, summary.Zero)
			return nil
		},
	}
	return cmd
}
