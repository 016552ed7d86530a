package domain

import (
	"fmt"
	"strings"
)

// Table is the intermediate representation shared by the CT and XLSX
// codecs: a timestamp, an ordered column schema, and row-major cell data.
// A Table is produced by exactly one reader, handed to exactly one writer,
// and then discarded; it is never mutated after construction except by the
// builder below (spec.md §3, §5).
type Table struct {
	Timestamp string
	Columns   []Column
	Rows      [][]Cell
}

// Validate re-checks the table-level invariants of spec.md §3 before a
// write and after a successful read: NUL-free timestamp, non-empty column
// names, recognized type codes, row width, and cell tag equal to column
// type. Integer widths are guaranteed by the cell constructors, and the
// STRING length ceiling is not checked here (the CT writer checks it at
// encode time). It is cheap enough to call on every codec boundary, and
// both codecs do.
func (t *Table) Validate() error {
	if strings.ContainsRune(t.Timestamp, 0) {
		return fmt.Errorf("%w: timestamp contains embedded NUL", ErrInvalidTable)
	}
	for i, col := range t.Columns {
		if col.Name == "" {
			return fmt.Errorf("%w: column %d has empty name", ErrInvalidTable, i)
		}
		if !col.TypeCode.Valid() {
			return fmt.Errorf("%w: column %q has unrecognized type code %d", ErrUnknownType, col.Name, uint32(col.TypeCode))
		}
	}
	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidTable, r, len(row), len(t.Columns))
		}
		for c, cell := range row {
			want := t.Columns[c].TypeCode
			if cell.TypeCode() != want {
				return fmt.Errorf("%w: row %d column %q has tag %s, want %s", ErrInvalidTable, r, t.Columns[c].Name, cell.TypeCode(), want)
			}
		}
	}
	return nil
}

// NewTable constructs a Table and validates it immediately, so that a
// caller building one up programmatically (as opposed to a codec reading
// one off the wire) fails fast at the same invariants.
func NewTable(timestamp string, columns []Column, rows [][]Cell) (*Table, error) {
	t := &Table{Timestamp: timestamp, Columns: columns, Rows: rows}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Equal reports whether two tables are semantically identical: same
// timestamp, same column schema, same cell values in the same order. It is
// the equality notion spec.md §8 property 2 (semantic round-trip) checks
// against — bytes need not match, only this.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Timestamp != other.Timestamp {
		return false
	}
	if len(t.Columns) != len(other.Columns) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != other.Columns[i] {
			return false
		}
	}
	if len(t.Rows) != len(other.Rows) {
		return false
	}
	for r := range t.Rows {
		if len(t.Rows[r]) != len(other.Rows[r]) {
			return false
		}
		for c := range t.Rows[r] {
			if t.Rows[r][c] != other.Rows[r][c] {
				return false
			}
		}
	}
	return true
}
