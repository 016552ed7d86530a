// Package primitive implements the little-endian fixed-width integer and
// float reads/writes, the two UTF-16LE string shapes, and the header
// padding discipline spec.md §4.1 specifies. Everything here is a thin,
// allocation-light layer over encoding/binary plus golang.org/x/text's
// UTF-16 transcoder; it has no knowledge of the CT file layout itself.
package primitive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// utf16LE is the shared UTF-16LE transcoder (no BOM) used for both string
// shapes. golang.org/x/text/encoding/unicode already knows how to walk
// surrogate pairs correctly in both directions, so neither direction needs
// hand-rolled surrogate math.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Reader sequences little-endian reads over an io.Reader and tracks the
// number of bytes consumed so callers can compute CRC region boundaries
// without a second pass.
type Reader struct {
	r  io.Reader
	n  int64
	lastErr error
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Offset returns the number of bytes read so far.
func (r *Reader) Offset() int64 { return r.n }

// Err returns the first error encountered by any read, if any.
func (r *Reader) Err() error { return r.lastErr }

func (r *Reader) readFull(buf []byte) error {
	if r.lastErr != nil {
		return r.lastErr
	}
	n, err := io.ReadFull(r.r, buf)
	r.n += int64(n)
	if err != nil {
		r.lastErr = err
	}
	return err
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (uint8, error) {
	var buf [1]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// I16 reads a little-endian signed 16-bit integer.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) U16() (uint16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// I32 reads a little-endian signed 32-bit integer.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) U32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// U64 reads a little-endian unsigned 64-bit integer.
func (r *Reader) U64() (uint64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// F32 reads an IEEE-754 binary32 little-endian float.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	return math.Float32frombits(v), err
}

// Raw reads exactly n raw bytes, counting them toward Offset.
func (r *Reader) Raw(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Skip discards n bytes, counting them toward Offset.
func (r *Reader) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("primitive: negative skip %d", n)
	}
	if n == 0 {
		return nil
	}
	buf := make([]byte, n)
	return r.readFull(buf)
}

// BodyString reads a body string: a 4-byte little-endian code-unit count L
// followed by 2*L bytes of UTF-16LE, with no terminator (spec.md §4.1).
func (r *Reader) BodyString() (string, error) {
	length, err := r.U32()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, int64(length)*2)
	if err := r.readFull(buf); err != nil {
		return "", err
	}
	out, err := utf16LE.NewDecoder().Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("primitive: decode body string: %w", err)
	}
	return string(out), nil
}

// HeaderString reads a NUL-terminated UTF-16LE string: code units until a
// 0x0000 terminator, with no length prefix (spec.md §4.1). It is used only
// inside the fixed 64-byte CT header.
func (r *Reader) HeaderString() (string, error) {
	var units []byte
	for {
		unit, err := r.U16()
		if err != nil {
			return "", err
		}
		if unit == 0 {
			break
		}
		units = append(units, byte(unit), byte(unit>>8))
	}
	if len(units) == 0 {
		return "", nil
	}
	out, err := utf16LE.NewDecoder().Bytes(units)
	if err != nil {
		return "", fmt.Errorf("primitive: decode header string: %w", err)
	}
	return string(out), nil
}

// Writer sequences little-endian writes over an io.Writer and tracks the
// number of bytes written, mirroring Reader.
type Writer struct {
	w io.Writer
	n int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 { return w.n }

func (w *Writer) write(buf []byte) error {
	n, err := w.w.Write(buf)
	w.n += int64(n)
	return err
}

// U8 writes one unsigned byte.
func (w *Writer) U8(v uint8) error { return w.write([]byte{v}) }

// I16 writes a little-endian signed 16-bit integer.
func (w *Writer) I16(v int16) error { return w.U16(uint16(v)) }

// U16 writes a little-endian unsigned 16-bit integer.
func (w *Writer) U16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return w.write(buf[:])
}

// I32 writes a little-endian signed 32-bit integer.
func (w *Writer) I32(v int32) error { return w.U32(uint32(v)) }

// U32 writes a little-endian unsigned 32-bit integer.
func (w *Writer) U32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.write(buf[:])
}

// U64 writes a little-endian unsigned 64-bit integer.
func (w *Writer) U64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.write(buf[:])
}

// F32 writes an IEEE-754 binary32 little-endian float.
func (w *Writer) F32(v float32) error { return w.U32(math.Float32bits(v)) }

// Pad writes n zero bytes.
func (w *Writer) Pad(n int64) error {
	if n < 0 {
		return fmt.Errorf("primitive: negative pad %d", n)
	}
	if n == 0 {
		return nil
	}
	return w.write(make([]byte, n))
}

// PadTo writes zero bytes until Offset reaches target. It returns an error
// if Offset already exceeds target, matching the CT writer's
// TimestampTooLong / HeaderOverflow checks (spec.md §4.3-4.4).
func (w *Writer) PadTo(target int64) error {
	if w.n > target {
		return fmt.Errorf("primitive: offset %d already past target %d", w.n, target)
	}
	return w.Pad(target - w.n)
}

// DecodeFixedHeaderString decodes a NUL-terminated UTF-16LE string out of a
// fixed-size buffer (used for the 16-byte magic region, whose length is
// known up front unlike the variable-length timestamp). It errors if no
// 0x0000 terminator appears before the buffer ends.
func DecodeFixedHeaderString(buf []byte) (string, error) {
	if len(buf)%2 != 0 {
		return "", fmt.Errorf("primitive: odd-length header buffer (%d bytes)", len(buf))
	}
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0 && buf[i+1] == 0 {
			out, err := utf16LE.NewDecoder().Bytes(buf[:i])
			if err != nil {
				return "", fmt.Errorf("primitive: decode fixed header string: %w", err)
			}
			return string(out), nil
		}
	}
	return "", fmt.Errorf("primitive: no NUL terminator in %d-byte header buffer", len(buf))
}

// EncodedLen returns the number of bytes the UTF-16LE transcoding of s
// occupies, which is always even (2 bytes per code unit, including each
// half of a surrogate pair).
func EncodedLen(s string) (int, error) {
	b, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// BodyString writes a body string: 4-byte little-endian code-unit count L,
// then 2*L bytes of UTF-16LE, no terminator (spec.md §4.1).
func (w *Writer) BodyString(s string) error {
	enc, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("primitive: encode body string: %w", err)
	}
	units := len(enc) / 2
	if units > math.MaxUint32 {
		return fmt.Errorf("primitive: string has %d code units, exceeds 2^32-1", units)
	}
	if err := w.U32(uint32(units)); err != nil {
		return err
	}
	if len(enc) == 0 {
		return nil
	}
	return w.write(enc)
}

// HeaderString writes a NUL-terminated UTF-16LE string: the transcoded
// code units followed by a single 0x0000 terminator, no length prefix
// (spec.md §4.1). Used only inside the fixed 64-byte CT header.
func (w *Writer) HeaderString(s string) error {
	enc, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("primitive: encode header string: %w", err)
	}
	if len(enc) > 0 {
		if err := w.write(enc); err != nil {
			return err
		}
	}
	return w.U16(0)
}
