// Package loader reads ledger files from disk and parses them.
//
// Example usage:
//
//	ldr := loader.New()
//	result, err := ldr.Load(ctx, "main.ledger")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Ledger.Len(), "transactions")
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/parser"
	"github.com/robinvdvleuten/feledger/telemetry"
)

// Loader reads and parses ledger files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithFilenames(false))
type Loader struct {
	// Filenames determines whether source positions carry the file path.
	// Enabled by default.
	Filenames bool
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFilenames controls whether positions in the parsed ledger and in
// parse errors are stamped with the file path.
func WithFilenames(enabled bool) Option {
	return func(l *Loader) {
		l.Filenames = enabled
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Filenames: true,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Result is a parsed file together with the bytes it was parsed from.
type Result struct {
	Ledger *ast.Ledger

	// Root is the absolute path of the loaded file, or the name passed to
	// LoadBytes.
	Root string

	// Source is the raw file content, kept for rendering error context.
	Source []byte
}

// Load reads filename in full and parses it.
//
// Read failures are returned wrapped, so errors.Is(err, fs.ErrNotExist)
// still holds. Parse failures are returned as *parser.ParseError.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.load %s", filepath.Base(filename)))
	defer timer.End()

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return l.parse(ctx, filename, absPath, data)
}

// LoadBytes parses data as if it had been read from filename. Nothing is
// read from disk.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	return l.parse(ctx, filename, filename, data)
}

func (l *Loader) parse(ctx context.Context, filename, root string, data []byte) (*Result, error) {
	stamp := ""
	if l.Filenames {
		stamp = filename
	}

	tree, err := parser.ParseBytesWithFilename(ctx, stamp, data)
	if err != nil {
		return nil, err
	}

	return &Result{
		Ledger: tree,
		Root:   root,
		Source: data,
	}, nil
}
