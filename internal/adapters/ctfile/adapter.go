// Package ctfile adapts internal/codec/ct to the ports.TableReader and
// ports.TableWriter interfaces and self-registers for ports.FileTypeCT.
package ctfile

import (
	"io"

	"github.com/jordanro2/rotable/internal/adapters/factory"
	"github.com/jordanro2/rotable/internal/codec/ct"
	"github.com/jordanro2/rotable/internal/domain"
	"github.com/jordanro2/rotable/internal/ports"
)

func init() {
	c := New()
	factory.RegisterCodec(ports.FileTypeCT, c, c)
}

// Codec reads and writes the CT binary format.
type Codec struct{}

// New returns a CT Codec.
func New() *Codec {
	return &Codec{}
}

// ReadTable decodes a CT file.
func (c *Codec) ReadTable(r io.Reader) (*domain.Table, error) {
	return ct.Read(r)
}

// WriteTable encodes t as a CT file.
func (c *Codec) WriteTable(w io.Writer, t *domain.Table) error {
	return ct.Write(w, t)
}
