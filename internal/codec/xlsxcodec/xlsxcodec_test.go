package xlsxcodec

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jordanro2/rotable/internal/domain"
)

func mixedTable(t *testing.T) *domain.Table {
	t.Helper()
	cols := []domain.Column{
		{Name: "Id", TypeCode: domain.TypeDword},
		{Name: "Flags", TypeCode: domain.TypeDwordHex},
		{Name: "Name", TypeCode: domain.TypeString},
		{Name: "Ratio", TypeCode: domain.TypeFloat},
		{Name: "Big", TypeCode: domain.TypeInt64},
		{Name: "Active", TypeCode: domain.TypeBool},
	}
	rows := [][]domain.Cell{
		{
			domain.NewDwordCell(1),
			domain.NewDwordHexCell(0xDEADBEEF),
			domain.NewStringCell("Sword"),
			domain.NewFloatCell(1.5),
			domain.NewInt64Cell(1<<63 + 7),
			domain.NewBoolCell(true),
		},
		{
			domain.NewDwordCell(2),
			domain.NewDwordHexCell(0x00000000),
			domain.NewStringCell(""),
			domain.NewFloatCell(-0.25),
			domain.NewInt64Cell(0),
			domain.NewBoolCell(false),
		},
	}
	tbl, err := domain.NewTable("2024-06-15 12:00:00", cols, rows)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestRoundTrip_Semantic(t *testing.T) {
	tbl := mixedTable(t)

	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !got.Equal(tbl) {
		t.Errorf("xlsx round-trip mismatch:\nwant %+v\ngot  %+v", tbl, got)
	}
}

func TestRoundTrip_EmptyTable(t *testing.T) {
	cols := []domain.Column{{Name: "Id", TypeCode: domain.TypeDword}}
	tbl, err := domain.NewTable("2024-06-15 12:00:00", cols, nil)
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
		t.Errorf("empty-table round-trip mismatch")
	}
}

func TestRead_UnknownTypeName(t *testing.T) {
	// A hand-authored workbook (not one of our own Write outputs) whose
	// type row names a type TypeCodeByName doesn't recognize must fail,
	// not silently coerce to some default.
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellStr(sheetName, "A1", "BOGUS"); err != nil {
		t.Fatalf("SetCellStr: %v", err)
	}
	if err := f.SetCellStr(sheetName, "A2", "Id"); err != nil {
		t.Fatalf("SetCellStr: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := Read(bytes.NewReader(buf.Bytes())); err == nil {
		t.Errorf("Read() of a workbook with an unrecognized type name succeeded, want an error")
	}
}

func TestParseCell_BoolVariants(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"TRUE", true},
		{"true", true},
		{"1", true},
		{"FALSE", false},
		{"false", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		cell, err := parseCell(domain.TypeBool, tt.text)
		if err != nil {
			t.Errorf("parseCell(BOOL, %q): %v", tt.text, err)
			continue
		}
		got, ok := cell.Bool()
		if !ok || got != tt.want {
			t.Errorf("parseCell(BOOL, %q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseCell_BoolRejectsGarbage(t *testing.T) {
	if _, err := parseCell(domain.TypeBool, "maybe"); err == nil {
		t.Errorf("parseCell(BOOL, \"maybe\") succeeded, want error")
	}
}

func TestParseCell_DwordHexAcceptsWithAndWithoutPrefix(t *testing.T) {
	for _, text := range []string{"0xDEADBEEF", "0xdeadbeef", "DEADBEEF"} {
		cell, err := parseCell(domain.TypeDwordHex, text)
		if err != nil {
			t.Fatalf("parseCell(DWORD_HEX, %q): %v", text, err)
		}
		v, ok := cell.Dword()
		if !ok || v != 0xDEADBEEF {
			t.Errorf("parseCell(DWORD_HEX, %q) = %#x, want 0xDEADBEEF", text, v)
		}
	}
}
