// Package documents imports PDF documents and YAML invoices.
package documents

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// PDFExt is the extension of imported documents.
const PDFExt = ".pdf"

// Hash returns the hex SHA-256 of the file at path.
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Extractor returns the text content of a document.
type Extractor interface {
	Extract(path string) (string, error)
}

// PDFExtractor extracts the plain text of PDF files.
type PDFExtractor struct{}

// Extract returns the text of all pages of the PDF at path.
func (PDFExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	text, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return "", fmt.Errorf("reading text of %s: %w", path, err)
	}
	return buf.String(), nil
}

// Files returns the files with extension ext in root (flat) or in the direct
// subdirectories of root (nested), as absolute paths in name order.
func Files(root string, flat bool, ext string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	if flat {
		return filesIn(root, ext)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, err := filesIn(filepath.Join(root, e.Name()), ext)
		if err != nil {
			return nil, err
		}
		files = append(files, sub...)
	}
	return files, nil
}

func filesIn(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Result counts the outcome of a document import.
type Result struct {
	Imported  int
	Unchanged int
	// Mismatched counts known paths whose file content changed since import.
	Mismatched int
}

// Importer stores PDF documents with their extracted text.
type Importer struct {
	store     *ledger.Store
	logger    *slog.Logger
	extractor Extractor
}

// NewImporter creates an Importer. A nil extractor means PDFExtractor.
func NewImporter(store *ledger.Store, logger *slog.Logger, extractor Extractor) *Importer {
	if extractor == nil {
		extractor = PDFExtractor{}
	}
	return &Importer{store: store, logger: logger, extractor: extractor}
}

// Import stores every PDF under root that is not yet known, in one transaction.
// A known path whose hash differs from the stored one is logged and left alone.
func (im *Importer) Import(ctx context.Context, root string, flat bool) (Result, error) {
	paths, err := Files(root, flat, PDFExt)
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = im.store.InTx(ctx, func(tx *ledger.Store) error {
		res = Result{}
		for _, path := range paths {
			hash, err := Hash(path)
			if err != nil {
				return err
			}

			existing, err := tx.DocumentByPath(ctx, path)
			switch {
			case err == nil:
				if existing.Hash != hash {
					im.logger.Warn("hash of stored and imported document differ", "path", path,
						"stored", existing.Hash, "imported", hash)
					res.Mismatched++
					continue
				}
				im.logger.Debug("document unchanged", "path", path, "hash", hash)
				res.Unchanged++
				continue
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}

			content, err := im.extractor.Extract(path)
			if err != nil {
				return err
			}
			doc, err := tx.CreateDocument(ctx, model.Document{Content: content, Path: path, Hash: hash})
			if err != nil {
				return err
			}
			im.logger.Debug("document imported", "id", doc.ID, "path", path, "hash", hash)
			res.Imported++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	im.logger.Info("documents imported", "root", root, "imported", res.Imported,
		"unchanged", res.Unchanged, "mismatched", res.Mismatched)
	return res, nil
}
