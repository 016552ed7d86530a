// Package ct implements the CT ("Compiled Table") binary codec: the
// reader and writer for the header, schema, and row body spec.md §4.3-§4.4
// and §6 specify bit-exactly. The header-offset layout follows the
// named-offset-constants convention the calvinalkan-agent-task slot-cache
// header and the aldas-go-modbus-client packet model use for fixed-width
// binary records; everything past the fixed 0x40-byte header is
// variable-length and is walked sequentially against the decoded schema
// instead.
package ct

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jordanro2/rotable/internal/codec/crc16"
	"github.com/jordanro2/rotable/internal/codec/primitive"
	"github.com/jordanro2/rotable/internal/domain"
)

// Magic is the literal header text, stored NUL-terminated UTF-16LE in the
// first 16 bytes of every CT file (7 chars * 2 bytes + 2-byte NUL = 16).
const Magic = "RO2SEC!"

// headerEnd is the fixed offset the header region pads to (spec.md §4.1,
// §4.3 step 3, §6).
const headerEnd = 0x40

// magicRegionSize is the fixed byte length of the magic region (spec.md
// §6, §9 note 3).
const magicRegionSize = 16

// Read decodes a complete CT file from r into a domain.Table, performing
// every validation step spec.md §4.3 lists in order, including the CRC-16
// check over the row-data region. It buffers the whole input first — CT
// files are single tables, not streams, and the checksum needs the exact
// row-region bytes available for re-verification once the row count and
// boundaries are known.
func Read(r io.Reader) (*domain.Table, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ct: read input: %w", err)
	}
	return readBuffer(buf)
}

func readBuffer(buf []byte) (*domain.Table, error) {
	pr := primitive.NewReader(bytes.NewReader(buf))

	magicBuf, err := pr.Raw(magicRegionSize)
	if err != nil {
		return nil, fmt.Errorf("ct: read magic: %w", err)
	}
	magic, err := primitive.DecodeFixedHeaderString(magicBuf)
	if err != nil || magic != Magic {
		return nil, fmt.Errorf("%w: got %q", domain.ErrBadMagic, magic)
	}

	timestamp, err := pr.HeaderString()
	if err != nil {
		return nil, fmt.Errorf("ct: read timestamp: %w", err)
	}

	if pr.Offset() > headerEnd {
		return nil, fmt.Errorf("%w: timestamp ends at offset %d, past %#x", domain.ErrHeaderOverflow, pr.Offset(), headerEnd)
	}
	if err := pr.Skip(headerEnd - pr.Offset()); err != nil {
		return nil, fmt.Errorf("ct: pad to header end: %w", err)
	}

	columnCount, err := pr.U32()
	if err != nil {
		return nil, fmt.Errorf("ct: read column count: %w", err)
	}

	names := make([]string, columnCount)
	for i := range names {
		names[i], err = pr.BodyString()
		if err != nil {
			return nil, fmt.Errorf("ct: read column name %d: %w", i, err)
		}
	}

	typeCount, err := pr.U32()
	if err != nil {
		return nil, fmt.Errorf("ct: read type count: %w", err)
	}
	if typeCount != columnCount {
		return nil, fmt.Errorf("%w: type_count=%d column_count=%d", domain.ErrSchemaMismatch, typeCount, columnCount)
	}

	columns := make([]domain.Column, columnCount)
	for i := range columns {
		code, err := pr.U32()
		if err != nil {
			return nil, fmt.Errorf("ct: read type code %d: %w", i, err)
		}
		tc := domain.TypeCode(code)
		if !tc.Valid() {
			return nil, fmt.Errorf("%w: code %d at column %d", domain.ErrUnknownType, code, i)
		}
		columns[i] = domain.Column{Name: names[i], TypeCode: tc}
	}

	rowCount, err := pr.U32()
	if err != nil {
		return nil, fmt.Errorf("ct: read row count: %w", err)
	}

	rowStart := pr.Offset()
	rows := make([][]domain.Cell, rowCount)
	for r := range rows {
		row := make([]domain.Cell, columnCount)
		for c, col := range columns {
			cell, err := readCell(pr, col.TypeCode)
			if err != nil {
				return nil, fmt.Errorf("ct: read row %d column %q: %w", r, col.Name, err)
			}
			row[c] = cell
		}
		rows[r] = row
	}
	rowEnd := pr.Offset()

	storedCRC, err := pr.U16()
	if err != nil {
		return nil, fmt.Errorf("ct: read checksum: %w", err)
	}
	if err := verifyChecksum(buf[rowStart:rowEnd], storedCRC); err != nil {
		return nil, err
	}

	if pr.Offset() != int64(len(buf)) {
		return nil, fmt.Errorf("%w: %d byte(s) remain after checksum", domain.ErrTrailingBytes, int64(len(buf))-pr.Offset())
	}

	t := &domain.Table{Timestamp: timestamp, Columns: columns, Rows: rows}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// readCell reads one cell of the given type from pr, per the per-type wire
// widths in spec.md §3 and §6.
func readCell(pr *primitive.Reader, tc domain.TypeCode) (domain.Cell, error) {
	switch tc {
	case domain.TypeByte:
		v, err := pr.U8()
		return domain.NewByteCell(v), err
	case domain.TypeShort:
		v, err := pr.I16()
		return domain.NewShortCell(v), err
	case domain.TypeWord:
		v, err := pr.U16()
		return domain.NewWordCell(v), err
	case domain.TypeInt:
		v, err := pr.I32()
		return domain.NewIntCell(v), err
	case domain.TypeDword:
		v, err := pr.U32()
		return domain.NewDwordCell(v), err
	case domain.TypeDwordHex:
		v, err := pr.U32()
		return domain.NewDwordHexCell(v), err
	case domain.TypeString:
		v, err := pr.BodyString()
		return domain.NewStringCell(v), err
	case domain.TypeFloat:
		v, err := pr.F32()
		return domain.NewFloatCell(v), err
	case domain.TypeInt64:
		v, err := pr.U64()
		return domain.NewInt64Cell(v), err
	case domain.TypeBool:
		v, err := pr.U8()
		return domain.NewBoolCell(v != 0), err
	default:
		return domain.Cell{}, fmt.Errorf("%w: code %d", domain.ErrUnknownType, uint32(tc))
	}
}

// verifyChecksum recomputes CRC-16/XMODEM over data and compares it to
// stored, per spec.md §4.3 step 10.
func verifyChecksum(data []byte, stored uint16) error {
	computed := crc16.Checksum(data)
	if computed != stored {
		return fmt.Errorf("%w: stored=0x%04X computed=0x%04X", domain.ErrBadChecksum, stored, computed)
	}
	return nil
}
