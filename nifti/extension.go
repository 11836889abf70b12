package nifti

import "encoding/binary"

// ExtensionReader reads the header of the first extension block. location is
// the offset of the block, immediately after the 4 extension flag bytes.
type ExtensionReader interface {
	ExtensionSize(b []byte, location int, order binary.ByteOrder) (int32, error)
	ExtensionCode(b []byte, location int, order binary.ByteOrder) (int32, error)
}

// Extensions reads the esize/ecode pair that starts every extension block.
type Extensions struct{}

// ExtensionLocation returns where the first extension starts for a header
// whose cookie (sizeof_hdr) is cookie.
func ExtensionLocation(cookie int) int {
	return cookie + 4
}

func (Extensions) ExtensionSize(b []byte, location int, order binary.ByteOrder) (int32, error) {
	r := NewByteReader(b, order)
	v := r.Int32(location)
	return v, r.Err()
}

func (Extensions) ExtensionCode(b []byte, location int, order binary.ByteOrder) (int32, error) {
	r := NewByteReader(b, order)
	v := r.Int32(location + 4)
	return v, r.Err()
}
