package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/accounts"
)

func newAccountCommand(a *app) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	accountCmd.AddCommand(newAccountCreateCommand(a))
	return accountCmd
}

func newAccountCreateCommand(a *app) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			acct, err := accounts.NewService(e.store, e.logger).Create(cmd.Context(), args[0], parent)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s (#%d)\n", acct.Name, acct.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "parent account name or path (Parent:Child)")

	return cmd
}
