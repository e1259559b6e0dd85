package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/config"
	"github.com/kontor-dev/kontor/internal/importer"
)

func newInitCommand(a *app) *cobra.Command {
	var empty bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a kontor project in --dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd.OutOrStdout(), a, empty)
		},
	}

	cmd.Flags().BoolVar(&empty, "empty", false, "do not create the default chart of accounts")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, a *app, empty bool) error {
	dir, err := a.projectDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, importer.ProcessedDir), 0o755); err != nil {
		return fmt.Errorf("creating import directory: %w", err)
	}

	cfgPath := a.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, config.FileName)
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("checking config: %w", err)
	}

	e, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Fprintln(out, "Setting up database and directories...")

	if !empty {
		chart := accounts.DefaultChart(e.cfg.VAT.InAccount, e.cfg.VAT.OutAccount)
		created, err := accounts.NewService(e.store, e.logger).Seed(ctx, chart)
		if err != nil {
			return fmt.Errorf("creating default accounts: %w", err)
		}
		fmt.Fprintf(out, "Created %d accounts.\n", created)
	}

	e.logger.Info("project initialized", "dir", dir)
	fmt.Fprintf(out, "Initialized kontor project at %s\n", dir)
	return nil
}
