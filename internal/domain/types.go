// Package domain holds the in-memory representation of a Compiled Table:
// the Table value, its column/cell model, and the sentinel errors the
// codecs in internal/codec report against it.
package domain

import "fmt"

// TypeCode identifies the binary shape of a column's cells. Values match
// the wire codes in the CT file format exactly; do not renumber them.
type TypeCode uint32

const (
	TypeByte      TypeCode = 2
	TypeShort     TypeCode = 3
	TypeWord      TypeCode = 4
	TypeInt       TypeCode = 5
	TypeDword     TypeCode = 6
	TypeDwordHex  TypeCode = 7
	TypeString    TypeCode = 8
	TypeFloat     TypeCode = 9
	TypeReserved  TypeCode = 10 // never valid; always rejected
	TypeInt64     TypeCode = 11
	TypeBool      TypeCode = 12
)

// String returns the uppercase type name used both in error messages and
// as the literal text of an XLSX type-row cell (spec.md §4.5).
func (t TypeCode) String() string {
	switch t {
	case TypeByte:
		return "BYTE"
	case TypeShort:
		return "SHORT"
	case TypeWord:
		return "WORD"
	case TypeInt:
		return "INT"
	case TypeDword:
		return "DWORD"
	case TypeDwordHex:
		return "DWORD_HEX"
	case TypeString:
		return "STRING"
	case TypeFloat:
		return "FLOAT"
	case TypeInt64:
		return "INT64"
	case TypeBool:
		return "BOOL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
	}
}

// TypeCodeByName maps the uppercase type names used in XLSX type rows back
// to their TypeCode. Unknown names return ok=false.
func TypeCodeByName(name string) (TypeCode, bool) {
	switch name {
	case "BYTE":
		return TypeByte, true
	case "SHORT":
		return TypeShort, true
	case "WORD":
		return TypeWord, true
	case "INT":
		return TypeInt, true
	case "DWORD":
		return TypeDword, true
	case "DWORD_HEX":
		return TypeDwordHex, true
	case "STRING":
		return TypeString, true
	case "FLOAT":
		return TypeFloat, true
	case "INT64":
		return TypeInt64, true
	case "BOOL":
		return TypeBool, true
	default:
		return 0, false
	}
}

// Valid reports whether t is one of the ten recognized wire codes. Code 10
// is reserved and always invalid.
func (t TypeCode) Valid() bool {
	switch t {
	case TypeByte, TypeShort, TypeWord, TypeInt, TypeDword, TypeDwordHex,
		TypeString, TypeFloat, TypeInt64, TypeBool:
		return true
	default:
		return false
	}
}

// CellSize returns the fixed wire size in bytes for every type except
// STRING, whose size is variable (4 + 2*L). Callers must special-case
// TypeString.
func (t TypeCode) CellSize() int {
	switch t {
	case TypeByte, TypeBool:
		return 1
	case TypeShort, TypeWord:
		return 2
	case TypeInt, TypeDword, TypeDwordHex, TypeFloat:
		return 4
	case TypeInt64:
		return 8
	default:
		return 0
	}
}

// Column is a single column descriptor: an ordered position, a non-empty
// name, and the TypeCode every cell in that column must carry.
type Column struct {
	Name     string
	TypeCode TypeCode
}
