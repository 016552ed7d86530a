package ct

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/jordanro2/rotable/internal/codec/crc16"
	"github.com/jordanro2/rotable/internal/codec/primitive"
	"github.com/jordanro2/rotable/internal/domain"
)

// Write encodes t to w as a complete CT file, in the byte layout spec.md
// §4.4 and §6 specify. It fails with the value-to-bytes edge rules in
// spec.md §4.4 before writing anything past the point of failure — the
// caller is responsible for discarding a partially written destination
// (the conversion driver writes to a temporary path and renames on
// success for exactly this reason; see internal/application).
func Write(w io.Writer, t *domain.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	// The row region is built into a separate buffer first so its CRC can
	// be computed before it's written once, rather than writing it twice
	// (once to compute, once for real) or seeking backward over w, which
	// an arbitrary io.Writer (e.g. a pipe to a temp file) may not support.
	var rowBuf bytes.Buffer
	rpw := primitive.NewWriter(&rowBuf)
	for r, row := range t.Rows {
		for c, cell := range row {
			if err := writeCell(rpw, cell); err != nil {
				return fmt.Errorf("ct: write row %d column %q: %w", r, t.Columns[c].Name, err)
			}
		}
	}
	checksum := crc16.Checksum(rowBuf.Bytes())

	pw := primitive.NewWriter(w)

	if err := pw.HeaderString(Magic); err != nil {
		return fmt.Errorf("ct: write magic: %w", err)
	}
	if pw.Offset() != magicRegionSize {
		return fmt.Errorf("ct: magic region is %d bytes, want %d (magic literal changed length?)", pw.Offset(), magicRegionSize)
	}

	if err := pw.HeaderString(t.Timestamp); err != nil {
		return fmt.Errorf("ct: write timestamp: %w", err)
	}
	if pw.Offset() > headerEnd {
		return fmt.Errorf("%w: timestamp pushed header to offset %d, past %#x", domain.ErrTimestampTooLong, pw.Offset(), headerEnd)
	}
	if err := pw.PadTo(headerEnd); err != nil {
		return fmt.Errorf("ct: pad header: %w", err)
	}

	if len(t.Columns) > math.MaxUint32 {
		return fmt.Errorf("ct: %d columns exceeds uint32 range", len(t.Columns))
	}
	columnCount := uint32(len(t.Columns))
	if err := pw.U32(columnCount); err != nil {
		return fmt.Errorf("ct: write column count: %w", err)
	}
	for i, col := range t.Columns {
		if err := pw.BodyString(col.Name); err != nil {
			return fmt.Errorf("ct: write column name %d: %w", i, err)
		}
	}

	if err := pw.U32(columnCount); err != nil {
		return fmt.Errorf("ct: write type count: %w", err)
	}
	for i, col := range t.Columns {
		if err := pw.U32(uint32(col.TypeCode)); err != nil {
			return fmt.Errorf("ct: write type code %d: %w", i, err)
		}
	}

	if len(t.Rows) > math.MaxUint32 {
		return fmt.Errorf("ct: %d rows exceeds uint32 range", len(t.Rows))
	}
	if err := pw.U32(uint32(len(t.Rows))); err != nil {
		return fmt.Errorf("ct: write row count: %w", err)
	}

	if _, err := w.Write(rowBuf.Bytes()); err != nil {
		return fmt.Errorf("ct: write row data: %w", err)
	}

	if err := pw.U16(checksum); err != nil {
		return fmt.Errorf("ct: write checksum: %w", err)
	}
	return nil
}

// writeCell writes a single cell's binary form. Integer cells already hold
// a Go value of their declared width (range checks happen when the cell is
// built, in domain.NewIntegerCell), so no range check is done here; BOOL
// writes true as 1 and false as 0; DWORD_HEX writes identically to DWORD
// (spec.md §4.4).
func writeCell(pw *primitive.Writer, cell domain.Cell) error {
	switch cell.TypeCode() {
	case domain.TypeByte:
		v, _ := cell.Byte()
		return pw.U8(v)
	case domain.TypeShort:
		v, _ := cell.Short()
		return pw.I16(v)
	case domain.TypeWord:
		v, _ := cell.Word()
		return pw.U16(v)
	case domain.TypeInt:
		v, _ := cell.Int()
		return pw.I32(v)
	case domain.TypeDword, domain.TypeDwordHex:
		v, _ := cell.Dword()
		return pw.U32(v)
	case domain.TypeString:
		v, _ := cell.String()
		enc, err := primitive.EncodedLen(v)
		if err != nil {
			return fmt.Errorf("ct: encode string cell: %w", err)
		}
		if enc/2 > math.MaxUint32 {
			return fmt.Errorf("%w: %d UTF-16 code units", domain.ErrStringTooLong, enc/2)
		}
		return pw.BodyString(v)
	case domain.TypeFloat:
		v, _ := cell.Float()
		return pw.F32(v)
	case domain.TypeInt64:
		v, _ := cell.Int64()
		return pw.U64(v)
	case domain.TypeBool:
		v, _ := cell.Bool()
		if v {
			return pw.U8(1)
		}
		return pw.U8(0)
	default:
		return fmt.Errorf("%w: code %d", domain.ErrUnknownType, uint32(cell.TypeCode()))
	}
}
