package nifti

import (
	"bytes"
	"encoding/binary"
	"math"
)

// ByteReader reads fixed-width values at absolute offsets of a buffer.
//
// The first out-of-range read is remembered and every later read returns the
// zero value, so a caller can read a whole field table and check Err once.
type ByteReader struct {
	buf   []byte
	order binary.ByteOrder
	err   error
}

// NewByteReader returns a reader over b using the given byte order.
func NewByteReader(b []byte, order binary.ByteOrder) *ByteReader {
	return &ByteReader{buf: b, order: order}
}

// Err returns the first error encountered, if any.
func (r *ByteReader) Err() error {
	return r.err
}

// Len returns the length of the underlying buffer.
func (r *ByteReader) Len() int {
	return len(r.buf)
}

// ByteOrder returns the order multi-byte values are read with.
func (r *ByteReader) ByteOrder() binary.ByteOrder {
	return r.order
}

func (r *ByteReader) slice(offset, width int) []byte {
	if r.err != nil {
		return nil
	}
	if offset < 0 || width < 0 || offset+width > len(r.buf) {
		r.err = &FormatError{Kind: Truncated, Offset: offset, Width: width, Len: len(r.buf)}
		return nil
	}
	return r.buf[offset : offset+width]
}

// Byte reads a single byte; byte order does not apply.
func (r *ByteReader) Byte(offset int) byte {
	b := r.slice(offset, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *ByteReader) Int16(offset int) int16 {
	b := r.slice(offset, 2)
	if b == nil {
		return 0
	}
	return int16(r.order.Uint16(b))
}

func (r *ByteReader) Int32(offset int) int32 {
	b := r.slice(offset, 4)
	if b == nil {
		return 0
	}
	return int32(r.order.Uint32(b))
}

func (r *ByteReader) Int64(offset int) int64 {
	b := r.slice(offset, 8)
	if b == nil {
		return 0
	}
	return int64(r.order.Uint64(b))
}

func (r *ByteReader) Float32(offset int) float32 {
	b := r.slice(offset, 4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(r.order.Uint32(b))
}

func (r *ByteReader) Float64(offset int) float64 {
	b := r.slice(offset, 8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(r.order.Uint64(b))
}

// String reads the text in [start, end), cut at the first NUL.
func (r *ByteReader) String(start, end int) string {
	b := r.slice(start, end-start)
	if b == nil {
		return ""
	}
	return TrimNul(b)
}

// TrimNul returns the bytes of b before the first NUL as a string.
func TrimNul(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
