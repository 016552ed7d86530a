package ports

import (
	"io"

	"github.com/jordanro2/rotable/internal/domain"
)

// TableReader is the port for decoding one format's bytes into a Table.
type TableReader interface {
	ReadTable(r io.Reader) (*domain.Table, error)
}

// TableWriter is the port for encoding a Table into one format's bytes.
type TableWriter interface {
	WriteTable(w io.Writer, t *domain.Table) error
}

// TableReaderFunc adapts a plain function to a TableReader.
type TableReaderFunc func(r io.Reader) (*domain.Table, error)

// ReadTable calls f.
func (f TableReaderFunc) ReadTable(r io.Reader) (*domain.Table, error) { return f(r) }

// TableWriterFunc adapts a plain function to a TableWriter.
type TableWriterFunc func(w io.Writer, t *domain.Table) error

// WriteTable calls f.
func (f TableWriterFunc) WriteTable(w io.Writer, t *domain.Table) error { return f(w, t) }
