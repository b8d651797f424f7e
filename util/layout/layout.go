// Package layout implements the fixed little-endian layout used by swig
// account state and instruction data: fixed-width integers, fixed byte
// arrays and length-prefixed byte strings.
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected end of data")
	ErrTooLarge      = errors.New("value does not fit its length prefix")
)

// Writer appends encoded values to an in-memory buffer
type Writer struct {
	buf []byte
}

func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) U64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Raw appends b as is
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes32 appends b prefixed with its u32 length
func (w *Writer) Bytes32(b []byte) error {
	if uint64(len(b)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, len(b))
	}
	w.U32(uint32(len(b)))
	w.Raw(b)
	return nil
}

// Bytes16 appends b prefixed with its u16 length
func (w *Writer) Bytes16(b []byte) error {
	if len(b) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, len(b))
	}
	w.U16(uint16(len(b)))
	w.Raw(b)
	return nil
}

// PutU64At overwrites 8 bytes at offset, used for size fields known only after encoding
func (w *Writer) PutU64At(offset int, v uint64) {
	binary.LittleEndian.PutUint64(w.buf[offset:offset+8], v)
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the encoded buffer; the writer must not be used afterwards
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader consumes encoded values from a byte slice
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || len(r.data)-r.off < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.off, len(r.data)-r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Raw returns a copy of the next n bytes
func (r *Reader) Raw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// Fixed fills dst with the next len(dst) bytes
func (r *Reader) Fixed(dst []byte) error {
	b, err := r.take(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func (r *Reader) Bytes32() ([]byte, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: length prefix %d exceeds remaining %d", ErrUnexpectedEOF, n, r.Remaining())
	}
	return r.Raw(int(n))
}

func (r *Reader) Bytes16() ([]byte, error) {
	n, err := r.U16()
	if err != nil {
		return nil, err
	}
	return r.Raw(int(n))
}

// Rest returns a copy of all unread bytes
func (r *Reader) Rest() []byte {
	b := append([]byte{}, r.data[r.off:]...)
	r.off = len(r.data)
	return b
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}
