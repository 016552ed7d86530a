package xlsxcodec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jordanro2/rotable/internal/domain"
)

// Read decodes an XLSX workbook produced by Write (or any workbook
// following the same three-row convention) back into a domain.Table, per
// spec.md §4.5's "Reading XLSX → Table" rules.
func Read(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsxcodec: open workbook: %w", err)
	}
	defer f.Close()

	// Raw cell values: formatted reads round numbers longer than 15 digits,
	// which would corrupt large INT64 values.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsxcodec: read %q: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: workbook has %d row(s), need at least a type row and a name row", domain.ErrInvalidTable, len(rows))
	}

	typeRowValues := rows[0]
	nameRowValues := rows[1]
	if len(typeRowValues) != len(nameRowValues) {
		return nil, fmt.Errorf("%w: type row has %d cell(s), name row has %d", domain.ErrInvalidTable, len(typeRowValues), len(nameRowValues))
	}

	columns := make([]domain.Column, len(typeRowValues))
	for i, typeName := range typeRowValues {
		tc, ok := domain.TypeCodeByName(strings.ToUpper(strings.TrimSpace(typeName)))
		if !ok {
			return nil, fmt.Errorf("%w: %q at column %d", domain.ErrUnknownType, typeName, i)
		}
		columns[i] = domain.Column{Name: nameRowValues[i], TypeCode: tc}
	}

	var dataRows [][]string
	if len(rows) > 2 {
		dataRows = rows[2:]
	}

	tableRows := make([][]domain.Cell, len(dataRows))
	for r, rawRow := range dataRows {
		row := make([]domain.Cell, len(columns))
		for c, col := range columns {
			var text string
			if c < len(rawRow) {
				text = rawRow[c]
			}
			cell, err := parseCell(col.TypeCode, text)
			if err != nil {
				return nil, fmt.Errorf("xlsxcodec: row %d column %q: %w", r, col.Name, err)
			}
			row[c] = cell
		}
		tableRows[r] = row
	}

	timestamp, err := readTimestamp(f)
	if err != nil {
		return nil, err
	}

	t := &domain.Table{Timestamp: timestamp, Columns: columns, Rows: tableRows}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// parseCell converts one XLSX cell's text into a domain.Cell for the
// given column type, per spec.md §4.5.
func parseCell(tc domain.TypeCode, text string) (domain.Cell, error) {
	trimmed := strings.TrimSpace(text)
	switch tc {
	case domain.TypeByte, domain.TypeShort, domain.TypeWord, domain.TypeInt, domain.TypeDword:
		v, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return domain.Cell{}, fmt.Errorf("parse %s value %q: %w", tc, text, err)
		}
		return domain.NewIntegerCell(tc, v)
	case domain.TypeDwordHex:
		hexDigits := trimmed
		if strings.HasPrefix(strings.ToLower(hexDigits), "0x") {
			hexDigits = hexDigits[2:]
		}
		v, err := strconv.ParseUint(hexDigits, 16, 64)
		if err != nil {
			return domain.Cell{}, fmt.Errorf("parse DWORD_HEX value %q: %w", text, err)
		}
		return domain.NewIntegerCell(domain.TypeDwordHex, int64(v))
	case domain.TypeString:
		return domain.NewStringCell(text), nil
	case domain.TypeFloat:
		v, err := strconv.ParseFloat(trimmed, 32)
		if err != nil {
			return domain.Cell{}, fmt.Errorf("parse FLOAT value %q: %w", text, err)
		}
		return domain.NewFloatCell(float32(v)), nil
	case domain.TypeInt64:
		v, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return domain.Cell{}, fmt.Errorf("parse INT64 value %q: %w", text, err)
		}
		return domain.NewInt64Cell(v), nil
	case domain.TypeBool:
		switch strings.ToUpper(trimmed) {
		case "TRUE", "1":
			return domain.NewBoolCell(true), nil
		case "FALSE", "0", "":
			return domain.NewBoolCell(false), nil
		default:
			return domain.Cell{}, fmt.Errorf("parse BOOL value %q: not TRUE/FALSE/1/0", text)
		}
	default:
		return domain.Cell{}, fmt.Errorf("%w: code %d", domain.ErrUnknownType, uint32(tc))
	}
}

// readTimestamp reads the timestamp back out of the hidden carrier sheet
// Write stashed it in. A workbook with no such sheet (e.g. authored by
// hand) round-trips as an empty timestamp rather than failing.
func readTimestamp(f *excelize.File) (string, error) {
	idx, err := f.GetSheetIndex(timestampSheet)
	if err != nil || idx < 0 {
		return "", nil
	}
	v, err := f.GetCellValue(timestampSheet, "A1")
	if err != nil {
		return "", fmt.Errorf("xlsxcodec: read timestamp cell: %w", err)
	}
	return v, nil
}
