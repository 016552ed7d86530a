package ct

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jordanro2/rotable/internal/domain"
)

func sampleTable(t *testing.T) *domain.Table {
	t.Helper()
	cols := []domain.Column{{Name: "Id", TypeCode: domain.TypeDword}}
	rows := [][]domain.Cell{
		{domain.NewDwordCell(1)},
		{domain.NewDwordCell(2)},
	}
	tbl, err := domain.NewTable("2024-01-01 00:00:00", cols, rows)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestRoundTrip_ByteExact(t *testing.T) {
	tbl := sampleTable(t)

	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first := append([]byte(nil), buf.Bytes()...)

	got, err := Read(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var buf2 bytes.Buffer
	if err := Write(&buf2, got); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if !bytes.Equal(first, buf2.Bytes()) {
		t.Errorf("round-trip bytes differ: %d vs %d bytes", len(first), buf2.Len())
	}
}

func TestRead_BadMagic(t *testing.T) {
	tbl := sampleTable(t)
	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	b[0] ^= 0xFF

	_, err := Read(bytes.NewReader(b))
	if !errors.Is(err, domain.ErrBadMagic) {
		t.Errorf("Read() error = %v, want ErrBadMagic", err)
	}
}

func TestRead_BadChecksum_BitFlipInRowData(t *testing.T) {
	tbl := sampleTable(t)
	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	// Flip a bit inside the row-data region (last byte before the 2-byte CRC).
	b[len(b)-3] ^= 0x01

	_, err := Read(bytes.NewReader(b))
	if !errors.Is(err, domain.ErrBadChecksum) {
		t.Errorf("Read() error = %v, want ErrBadChecksum", err)
	}
}

func TestRead_BadChecksum_BitFlipInStoredCRC(t *testing.T) {
	tbl := sampleTable(t)
	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	b[len(b)-1] ^= 0x01 // S3: XOR the last CRC byte.

	_, err := Read(bytes.NewReader(b))
	if !errors.Is(err, domain.ErrBadChecksum) {
		t.Errorf("Read() error = %v, want ErrBadChecksum", err)
	}
}

func TestRead_TrailingBytes(t *testing.T) {
	tbl := sampleTable(t)
	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := append(buf.Bytes(), 0x00)

	_, err := Read(bytes.NewReader(b))
	if !errors.Is(err, domain.ErrTrailingBytes) {
		t.Errorf("Read() error = %v, want ErrTrailingBytes", err)
	}
}

func TestRead_SchemaMismatch(t *testing.T) {
	// Hand-build a header with column_count=3 but type_count=2 (spec.md S6).
	var buf bytes.Buffer
	var raw []byte
	raw = append(raw, encodeHeaderString(t, Magic)...)
	raw = append(raw, encodeHeaderString(t, "2024-01-01 00:00:00")...)
	for int64(len(raw)) < headerEnd {
		raw = append(raw, 0x00)
	}
	raw = append(raw, leU32(3)...) // column_count = 3
	for i := 0; i < 3; i++ {
		raw = append(raw, leU32(0)...) // three zero-length column names
	}
	raw = append(raw, leU32(2)...) // type_count = 2, mismatch

	buf.Write(raw)
	_, err := Read(&buf)
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Errorf("Read() error = %v, want ErrSchemaMismatch", err)
	}
}

func TestRead_UnknownType(t *testing.T) {
	var raw []byte
	raw = append(raw, encodeHeaderString(t, Magic)...)
	raw = append(raw, encodeHeaderString(t, "2024-01-01 00:00:00")...)
	for int64(len(raw)) < headerEnd {
		raw = append(raw, 0x00)
	}
	raw = append(raw, leU32(1)...)          // column_count = 1
	raw = append(raw, leU32(0)...)          // column name length 0
	raw = append(raw, leU32(1)...)          // type_count = 1
	raw = append(raw, leU32(10)...)         // reserved/unknown type code
	raw = append(raw, leU32(0)...)          // row_count = 0

	_, err := Read(bytes.NewReader(raw))
	if !errors.Is(err, domain.ErrUnknownType) {
		t.Errorf("Read() error = %v, want ErrUnknownType", err)
	}
}

func TestEmptyTable_LegalAndZeroCRC(t *testing.T) {
	tbl, err := domain.NewTable("2024-01-01 00:00:00", nil, nil)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	if b[len(b)-2] != 0x00 || b[len(b)-1] != 0x00 {
		t.Errorf("empty table CRC = %02X%02X, want 0000", b[len(b)-1], b[len(b)-2])
	}

	got, err := Read(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !got.Equal(tbl) {
		t.Errorf("round-tripped empty table does not match original")
	}
}

func TestStringCell_EmptyAndMaxLength(t *testing.T) {
	cols := []domain.Column{
		{Name: "Empty", TypeCode: domain.TypeString},
		{Name: "Long", TypeCode: domain.TypeString},
	}
	longStr := make([]byte, 0xFFFF)
	for i := range longStr {
		longStr[i] = 'A'
	}
	rows := [][]domain.Cell{
		{domain.NewStringCell(""), domain.NewStringCell(string(longStr))},
	}
	tbl, err := domain.NewTable("2024-01-01 00:00:00", cols, rows)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !got.Equal(tbl) {
		t.Errorf("string round-trip mismatch")
	}
}

func TestNewIntegerCell_ValueOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		tc   domain.TypeCode
		v    int64
	}{
		{"byte-too-large", domain.TypeByte, 256},
		{"word-negative", domain.TypeWord, -1},
		{"dword-too-large", domain.TypeDword, 1 << 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewIntegerCell(tt.tc, tt.v)
			if !errors.Is(err, domain.ErrValueOutOfRange) {
				t.Errorf("NewIntegerCell(%s, %d) error = %v, want ErrValueOutOfRange", tt.tc, tt.v, err)
			}
		})
	}
}

func TestNewIntegerCell_ValueAtBoundary(t *testing.T) {
	tests := []struct {
		name string
		tc   domain.TypeCode
		v    int64
	}{
		{"byte-max", domain.TypeByte, 255},
		{"word-min", domain.TypeWord, 0},
		{"dword-max", domain.TypeDword, 1<<32 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := domain.NewIntegerCell(tt.tc, tt.v); err != nil {
				t.Errorf("NewIntegerCell(%s, %d) unexpected error: %v", tt.tc, tt.v, err)
			}
		})
	}
}

// --- test-only helpers for hand-building malformed headers ---

func encodeHeaderString(t *testing.T, s string) []byte {
	t.Helper()
	var out []byte
	for _, r := range s {
		if r > 0xFFFF {
			t.Fatalf("encodeHeaderString: non-BMP rune unsupported in this helper")
		}
		out = append(out, byte(r), byte(r>>8))
	}
	return append(out, 0x00, 0x00)
}

func leU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
