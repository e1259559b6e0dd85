package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/kontor-dev/kontor/internal/config"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/logging"
)

// app holds the global flags.
type app struct {
	dir        string
	configPath string
	debug      bool
}

// env is an opened project: config, logger and database.
type env struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
	store  *ledger.Store
	logs   io.Closer
}

func (a *app) projectDir() (string, error) {
	dir, err := filepath.Abs(a.dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return dir, nil
}

// open loads the config, opens the log file and the database.
func (a *app) open(ctx context.Context) (*env, error) {
	dir, err := a.projectDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadDir(dir, a.configPath)
	if err != nil {
		return nil, err
	}

	logger, logs, err := logging.OpenFile(cfg.LogPath(dir), cfg.Log.Level, a.debug)
	if err != nil {
		return nil, err
	}
	if a.debug {
		logger.Debug("debug mode is on")
	}

	store, err := ledger.Open(ctx, cfg.DatabasePath(dir), logger)
	if err != nil {
		logger.Error("opening database failed", "error", err)
		logs.Close()
		return nil, err
	}

	return &env{dir: dir, cfg: cfg, logger: logger, store: store, logs: logs}, nil
}

func (e *env) Close() error {
	return errors.Join(e.store.Close(), e.logs.Close())
}

// width returns flagWidth, or the configured width if the flag was not given.
func (e *env) width(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	return e.cfg.Display.Width
}
