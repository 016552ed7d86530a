// Package xlsxfile adapts internal/codec/xlsxcodec to the
// ports.TableReader and ports.TableWriter interfaces and self-registers
// for ports.FileTypeXLSX.
package xlsxfile

import (
	"io"

	"github.com/jordanro2/rotable/internal/adapters/factory"
	"github.com/jordanro2/rotable/internal/codec/xlsxcodec"
	"github.com/jordanro2/rotable/internal/domain"
	"github.com/jordanro2/rotable/internal/ports"
)

func init() {
	c := New()
	factory.RegisterCodec(ports.FileTypeXLSX, c, c)
}

// Codec reads and writes the XLSX representation of a Table.
type Codec struct{}

// New returns an XLSX Codec.
func New() *Codec {
	return &Codec{}
}

// ReadTable decodes an XLSX workbook.
func (c *Codec) ReadTable(r io.Reader) (*domain.Table, error) {
	return xlsxcodec.Read(r)
}

// WriteTable encodes t as an XLSX workbook.
func (c *Codec) WriteTable(w io.Writer, t *domain.Table) error {
	return xlsxcodec.Write(w, t)
}
