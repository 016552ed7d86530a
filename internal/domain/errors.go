package domain

import "errors"

// Sentinel errors surfaced by the CT and XLSX codecs. Callers should use
// errors.Is against these rather than matching error text, per spec.md §7.
var (
	ErrBadMagic             = errors.New("ct: bad magic")
	ErrHeaderOverflow       = errors.New("ct: header overflow")
	ErrTimestampTooLong     = errors.New("ct: timestamp too long")
	ErrSchemaMismatch       = errors.New("ct: schema mismatch")
	ErrUnknownType          = errors.New("ct: unknown type code")
	ErrBadChecksum          = errors.New("ct: bad checksum")
	ErrTrailingBytes        = errors.New("ct: trailing bytes")
	ErrValueOutOfRange      = errors.New("ct: value out of range")
	ErrStringTooLong        = errors.New("ct: string too long")
	ErrUnsupportedExtension = errors.New("rotable: unsupported file extension")
	ErrInvalidTable         = errors.New("rotable: invalid table")
)
