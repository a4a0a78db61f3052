package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Output appends rows of T to a CSV stream, writing the header once. A nil
// *Output discards everything.
type Output[T any] struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewOutput wraps w. If w is also an io.Closer, Close closes it.
func NewOutput[T any](w io.Writer) *Output[T] {
	out := &Output[T]{w: w}
	if c, ok := w.(io.Closer); ok {
		out.closer = c
	}
	return out
}

// CreateFile creates path (and its directory) and returns an Output on it.
// An empty path disables output and returns nil.
func CreateFile[T any](path string) (*Output[T], error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return NewOutput[T](f), nil
}

// Write appends rows.
func (o *Output[T]) Write(rows ...T) error {
	if o == nil || len(rows) == 0 {
		return nil
	}
	if !o.headerWritten {
		if err := gocsv.Marshal(rows, o.w); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		o.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, o.w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// Close closes the underlying writer when it is closable.
func (o *Output[T]) Close() error {
	if o == nil || o.closer == nil {
		return nil
	}
	return o.closer.Close()
}
