// Package loader reads an export from disk and hands it to the wave
// parser. It is the only part of the import pipeline that performs
// I/O; everything downstream works on the bytes it produces.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wavecount-dev/wavecount/telemetry"
	"github.com/wavecount-dev/wavecount/wave"
)

// Result is a loaded and parsed export. Source holds the raw bytes so
// error formatters can render excerpts.
type Result struct {
	Filename string
	Source   []byte
	Document *wave.Document
}

// Loader loads Wave ledger exports.
type Loader struct{}

// New creates a new Loader.
func New() *Loader {
	return &Loader{}
}

// Load reads and parses the export at filename.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	done := telemetry.FromContext(ctx).Start("load " + filepath.Base(filename))
	data, err := os.ReadFile(filename)
	done()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses an export already held in memory, e.g. from stdin.
// The filename is used for reporting only. On a parse error the result
// still carries the source bytes so callers can render excerpts.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	result := &Result{
		Filename: filename,
		Source:   data,
	}

	done := telemetry.FromContext(ctx).Start("parse")
	doc, err := wave.Parse(data)
	done()
	if err != nil {
		return result, err
	}

	result.Document = doc
	return result, nil
}
