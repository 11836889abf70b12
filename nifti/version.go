// Package nifti holds what the NIfTI-1 and NIfTI-2 header decoders share:
// offset-based byte reading, code labels, extension reading and errors.
package nifti

import "encoding/binary"

// Header cookies, stored as sizeof_hdr in the first 4 bytes.
const (
	Nifti1Cookie = 348
	Nifti2Cookie = 540
)

// ProbeCookie reads the int32 at offset 0 big-endian and then little-endian,
// returning the order in which it equals cookie. Nothing past the first 4
// bytes is touched.
func ProbeCookie(b []byte, cookie int32) (binary.ByteOrder, error) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		r := NewByteReader(b, order)
		v := r.Int32(0)
		if err := r.Err(); err != nil {
			return nil, err
		}
		if v == cookie {
			return order, nil
		}
	}
	return nil, &FormatError{Kind: InvalidMagic, Offset: 0, Width: 4, Len: len(b)}
}

// DetectVersion returns 1 or 2 depending on which header cookie b starts with.
func DetectVersion(b []byte) (int, error) {
	if _, err := ProbeCookie(b, Nifti2Cookie); err == nil {
		return 2, nil
	}
	if _, err := ProbeCookie(b, Nifti1Cookie); err != nil {
		return 0, err
	}
	return 1, nil
}
