package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/importer"
)

func newSanitizeCommand() *cobra.Command {
	sanitizeCmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Convert bank exports into kontor journal CSV",
	}
	sanitizeCmd.AddCommand(newSanitizePostbankCommand())
	return sanitizeCmd
}

func newSanitizePostbankCommand() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "postbank <input> <output>",
		Short: "Convert a Postbank CSV export",
		Long: `Convert a Postbank "Umsatzauskunft" export (Windows-1252, German number
format) into a kontor journal CSV that "import journal" reads.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer in.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[1], err)
			}

			n, err := importer.Sanitize(in, out, reverse)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", n, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "write rows in reverse order")

	return cmd
}
