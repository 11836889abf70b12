package nifti

import "fmt"

// ErrorKind classifies a FormatError.
type ErrorKind int

const (
	// InvalidMagic means neither byte order of the leading cookie matched.
	InvalidMagic ErrorKind = iota + 1
	// Truncated means a field extends past the end of the buffer.
	Truncated
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidMagic:
		return "invalid magic"
	case Truncated:
		return "truncated"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// FormatError is returned when a buffer cannot be decoded as a header.
type FormatError struct {
	Kind   ErrorKind
	Offset int // offset of the offending field
	Width  int // bytes the field needs
	Len    int // length of the buffer
}

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrInvalidMagic = &FormatError{Kind: InvalidMagic}
	ErrTruncated    = &FormatError{Kind: Truncated}
)

func (e *FormatError) Error() string {
	switch e.Kind {
	case InvalidMagic:
		return "nifti: invalid magic: this does not appear to be a NIfTI file"
	case Truncated:
		return fmt.Sprintf("nifti: truncated header: %d bytes at offset %d, buffer has %d",
			e.Width, e.Offset, e.Len)
	}
	return "nifti: " + e.Kind.String()
}

// Is reports whether target is a *FormatError of the same kind.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
