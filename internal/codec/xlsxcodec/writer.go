// Package xlsxcodec implements the XLSX representation of a domain.Table:
// the fixed three-row convention (type row, name row, data rows) spec.md
// §4.5 and §6 specify, built on github.com/xuri/excelize/v2 — the
// teacher project's own XLSX dependency, here driving the real read/write
// contract instead of generating filler workbooks.
package xlsxcodec

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jordanro2/rotable/internal/domain"
)

const (
	sheetName     = "Sheet1"
	typeRow       = 1
	nameRow       = 2
	firstDataRow  = 3
	timestampSheet = "CT_Timestamp"
	minColWidth   = 8.0
	maxColWidth   = 60.0
)

// Write encodes t as an XLSX workbook: row 1 holds uppercase type names,
// row 2 holds column names, rows 3.. hold data, and the timestamp is
// stashed in a hidden carrier sheet (spec.md §4.5).
func Write(w io.Writer, t *domain.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	hexFillID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFE8B3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsxcodec: create hex column style: %w", err)
	}

	widths := make([]float64, len(t.Columns))
	for i, col := range t.Columns {
		ref, err := excelize.CoordinatesToCellName(i+1, typeRow)
		if err != nil {
			return fmt.Errorf("xlsxcodec: cell ref for type row: %w", err)
		}
		typeName := col.TypeCode.String()
		if err := f.SetCellStr(sheetName, ref, typeName); err != nil {
			return fmt.Errorf("xlsxcodec: write type cell %s: %w", ref, err)
		}
		if col.TypeCode == domain.TypeDwordHex {
			if err := f.SetCellStyle(sheetName, ref, ref, hexFillID); err != nil {
				return fmt.Errorf("xlsxcodec: style hex type cell %s: %w", ref, err)
			}
		}
		widths[i] = float64(len([]rune(typeName)))

		ref, err = excelize.CoordinatesToCellName(i+1, nameRow)
		if err != nil {
			return fmt.Errorf("xlsxcodec: cell ref for name row: %w", err)
		}
		if err := f.SetCellStr(sheetName, ref, col.Name); err != nil {
			return fmt.Errorf("xlsxcodec: write name cell %s: %w", ref, err)
		}
		if n := len([]rune(col.Name)); float64(n) > widths[i] {
			widths[i] = float64(n)
		}
	}

	for r, row := range t.Rows {
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, firstDataRow+r)
			if err != nil {
				return fmt.Errorf("xlsxcodec: cell ref for row %d column %d: %w", r, c, err)
			}
			text, err := writeCellValue(f, sheetName, ref, cell)
			if err != nil {
				return fmt.Errorf("xlsxcodec: write row %d column %q: %w", r, t.Columns[c].Name, err)
			}
			if n := len([]rune(text)); float64(n) > widths[c] {
				widths[c] = float64(n)
			}
		}
	}

	for i, width := range widths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsxcodec: column name for index %d: %w", i, err)
		}
		colWidth := width + 2
		if colWidth < minColWidth {
			colWidth = minColWidth
		}
		if colWidth > maxColWidth {
			colWidth = maxColWidth
		}
		if err := f.SetColWidth(sheetName, colName, colName, colWidth); err != nil {
			return fmt.Errorf("xlsxcodec: set column %d width: %w", i, err)
		}
	}

	if err := writeTimestamp(f, t.Timestamp); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxcodec: write workbook: %w", err)
	}
	return nil
}

// writeCellValue writes one data cell per spec.md §4.5's "Writing Table →
// XLSX" rules and returns the text it wrote, for width-measurement.
func writeCellValue(f *excelize.File, sheet, ref string, cell domain.Cell) (string, error) {
	switch cell.TypeCode() {
	case domain.TypeByte:
		v, _ := cell.Byte()
		return strconv.Itoa(int(v)), f.SetCellValue(sheet, ref, v)
	case domain.TypeShort:
		v, _ := cell.Short()
		return strconv.Itoa(int(v)), f.SetCellValue(sheet, ref, v)
	case domain.TypeWord:
		v, _ := cell.Word()
		return strconv.Itoa(int(v)), f.SetCellValue(sheet, ref, v)
	case domain.TypeInt:
		v, _ := cell.Int()
		return strconv.Itoa(int(v)), f.SetCellValue(sheet, ref, v)
	case domain.TypeDword:
		v, _ := cell.Dword()
		return strconv.FormatUint(uint64(v), 10), f.SetCellValue(sheet, ref, v)
	case domain.TypeDwordHex:
		v, _ := cell.Dword()
		text := fmt.Sprintf("0x%08X", v)
		return text, f.SetCellStr(sheet, ref, text)
	case domain.TypeString:
		v, _ := cell.String()
		return v, f.SetCellStr(sheet, ref, v)
	case domain.TypeFloat:
		v, _ := cell.Float()
		return strconv.FormatFloat(float64(v), 'g', -1, 32), f.SetCellValue(sheet, ref, v)
	case domain.TypeInt64:
		v, _ := cell.Int64()
		return strconv.FormatUint(v, 10), f.SetCellValue(sheet, ref, v)
	case domain.TypeBool:
		v, _ := cell.Bool()
		text := "FALSE"
		if v {
			text = "TRUE"
		}
		return text, f.SetCellStr(sheet, ref, text)
	default:
		return "", fmt.Errorf("%w: code %d", domain.ErrUnknownType, uint32(cell.TypeCode()))
	}
}

// writeTimestamp stashes the table's timestamp in a hidden carrier sheet,
// since excelize's public API covers the core document properties
// (title, subject, …) but not free-form custom key/value pairs (spec.md
// §4.5, §6).
func writeTimestamp(f *excelize.File, timestamp string) error {
	if _, err := f.NewSheet(timestampSheet); err != nil {
		return fmt.Errorf("xlsxcodec: create timestamp sheet: %w", err)
	}
	if err := f.SetCellStr(timestampSheet, "A1", timestamp); err != nil {
		return fmt.Errorf("xlsxcodec: write timestamp cell: %w", err)
	}
	if err := f.SetSheetVisible(timestampSheet, false); err != nil {
		return fmt.Errorf("xlsxcodec: hide timestamp sheet: %w", err)
	}
	f.SetActiveSheet(indexOfSheet(f, sheetName))
	return nil
}

func indexOfSheet(f *excelize.File, name string) int {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return 0
	}
	return idx
}
