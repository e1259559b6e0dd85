// Package importer reads bank statement exports into journal entries.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/kontor-dev/kontor/internal/journal"
	"github.com/kontor-dev/kontor/internal/model"
)

// Parser converts a bank statement file into journal entries.
type Parser interface {
	Parse(r io.Reader) ([]model.JournalEntry, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&KontorParser{})
	r.Register(&PostbankParser{})
	return r
}

// KontorParser reads the native statement format (see journal.ReadEntries).
type KontorParser struct{}

// Format returns the parser name.
func (p *KontorParser) Format() string { return "kontor" }

// Parse reads a native statement file.
func (p *KontorParser) Parse(r io.Reader) ([]model.JournalEntry, error) {
	return journal.ReadEntries(r)
}

// ParseFile opens path and parses it with p.
func ParseFile(p Parser, path string) ([]model.JournalEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	entries, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", path, p.Format(), err)
	}
	return entries, nil
}

// Reverse returns entries in reverse order. Bank exports often list the newest
// movement first.
func Reverse(entries []model.JournalEntry) []model.JournalEntry {
	out := slices.Clone(entries)
	slices.Reverse(out)
	return out
}

// ImportDir is the inbox for statement files, relative to the project directory.
const ImportDir = "import"

// ProcessedDir receives statement files after import.
const ProcessedDir = "import/processed"

// Scan returns CSV files in <root>/import/, sorted by name.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, ImportDir, fileName)
	dstDir := filepath.Join(root, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
