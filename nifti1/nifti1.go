// nifti1 contains methods to read nifti1 files.
//
// Based on the official definition of the nifti1 header,
// https://nifti.nimh.nih.gov/pub/dist/src/niftilib/nifti1.h

package nifti1

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kaczmarj/gonifti/nifti"
	"github.com/kaczmarj/gonifti/nifti2"
	log "github.com/sirupsen/logrus"
)

// Header defines the structure of the Nifti1 header.
//
// Type translation from nifti1 C header to golang:
//
// C     Go
// -------------
// int   int32
// float float32
// short int16
// char  int8
type Header struct {
	SizeOfHdr          int32    // Must be 348
	UnusedDataType     [10]int8 // Unused
	UnusedDbName       [18]int8 // Unused
	UnusedExtents      int32    // Unused
	UnusedSessionError int16    // Unused
	UnusedRegular      int8     // Unused
	DimInfo            int8     // MRI slice ordering

	Dim           [8]int16   // Data array dimenions
	IntentP1      float32    // 1st intent parameter
	IntentP2      float32    // 2nd intent parameter
	IntentP3      float32    // 3rd intent parameter
	IntentCode    int16      // NIFTI_INTENT_* code
	DataType      int16      // Defines data type
	BitPix        int16      // Number bits/voxel
	SliceStart    int16      // First slice index
	PixDim        [8]float32 // Grid spacing
	VoxOffset     float32    // Offset into .nii file
	SclSlope      float32    // Data scaling: slope
	SclInter      float32    // Data scaling: offset
	SliceEnd      int16      // Last slice index
	SliceCode     int8       // Slice timing order
	XYZTUnits     int8       // Units of pixdim[1..4]
	CalMax        float32    // Max display intensity
	CalMin        float32    // Min display intensity
	SliceDuration float32    // Time for 1 slice
	TOffset       float32    // Time axis shift
	UnusedGlmax   int32      // Unused
	UnusedGlmin   int32      // Unused

	Descrip [80]int8 // Any text you like
	AuxFile [24]int8 // Auxiliary filename

	QFormCode int16 // NIFTI_XFORM_* code
	SFormCode int16 // NIFTI_XFORM_* code

	QuaternB float32 // Quaternion b params
	QuaternC float32 // Quaternion c params
	QuaternD float32 // Quaternion d params
	QOffsetX float32 // Quaternion x shift
	QOffsetY float32 // Quaternion y shift
	QOffsetZ float32 // Quaternion z shift

	SRowX [4]float32 // 1st row affine transform
	SRowY [4]float32 // 2nd row affine transform
	SRowZ [4]float32 // 3rd row affine transform

	IntentName [16]int8 // 'name' or meaning of data

	Magic [4]int8 // Must be "ni1\0" or "n+1\0"
}

// HeaderSize is the size of the fixed header, also stored as its cookie.
const HeaderSize = nifti.Nifti1Cookie

var (
	magicSingleFile = [4]int8{'n', '+', '1', 0}
	magicPairFile   = [4]int8{'n', 'i', '1', 0}
)

// Extension is the 4-byte flag following the header and, when the flag is
// set, the size and code of the first extension.
type Extension struct {
	Flag [4]byte
	Size int32
	Code int32
}

// ReadHeader reads a header and returns the byteorder of the file.
// Refer to this link for C implementation
// https://github.com/afni/afni/blob/master/src/nifti/niftilib/nifti1_io.c#L3948-L4042
func ReadHeader(b []byte) (*Header, binary.ByteOrder, error) {
	log.Debug("Reading header ...")

	order, err := nifti.ProbeCookie(b, HeaderSize)
	if err != nil {
		return nil, nil, err
	}
	if len(b) < HeaderSize {
		return nil, nil, &nifti.FormatError{Kind: nifti.Truncated, Offset: 0, Width: HeaderSize, Len: len(b)}
	}

	h := new(Header)
	if err := binary.Read(bytes.NewReader(b[:HeaderSize]), order, h); err != nil {
		return nil, nil, fmt.Errorf("nifti1: decoding header: %w", err)
	}

	log.WithFields(log.Fields{
		"byteOrder": order,
	}).Debug("Found byte order")

	validateHeader(h)
	return h, order, nil
}

// validateHeader only reports oddities; a header with a valid cookie is
// always returned to the caller.
func validateHeader(h *Header) {
	if h.Magic != magicSingleFile && h.Magic != magicPairFile {
		log.WithFields(log.Fields{
			"cause": "invalid file magic",
			"magic": int8String(h.Magic[:]),
		}).Warn("Unexpected nifti1 magic string")
	}

	if h.DataType == nifti.TypeBinary || h.DataType == nifti.TypeUnknown {
		log.WithFields(log.Fields{
			"cause":    "bad datatype",
			"dataType": h.DataType,
		}).Warn("Data type is not usable")
	}
}

// ReadExtension reads the extension flag following a nifti1 header and, if
// it is set, the size and code of the first extension.
func ReadExtension(b []byte, order binary.ByteOrder, ext nifti.ExtensionReader) (Extension, error) {
	var e Extension
	if len(b) <= HeaderSize {
		return e, nil
	}

	r := nifti.NewByteReader(b, order)
	for i := range e.Flag {
		e.Flag[i] = r.Byte(HeaderSize + i)
	}
	if err := r.Err(); err != nil {
		return Extension{}, err
	}
	if e.Flag[0] == 0 {
		return e, nil
	}

	var err error
	loc := nifti.ExtensionLocation(HeaderSize)
	if e.Size, err = ext.ExtensionSize(b, loc, order); err != nil {
		return Extension{}, err
	}
	if e.Code, err = ext.ExtensionCode(b, loc, order); err != nil {
		return Extension{}, err
	}
	return e, nil
}

// Decode reads a nifti1 header and its extension flag from b and widens them
// into the nifti2 representation.
func Decode(b []byte) (*nifti2.Header, error) {
	h, order, err := ReadHeader(b)
	if err != nil {
		return nil, err
	}
	ext, err := ReadExtension(b, order, nifti.Extensions{})
	if err != nil {
		return nil, err
	}
	return h.Widen(order, ext), nil
}

// Widen converts the header to the nifti2 representation, which holds every
// nifti1 field at equal or greater precision.
func (h *Header) Widen(order binary.ByteOrder, ext Extension) *nifti2.Header {
	w := &nifti2.Header{
		LittleEndian:    order == binary.LittleEndian,
		DatatypeCode:    h.DataType,
		NumBitsPerVoxel: h.BitPix,
		IntentP1:        float64(h.IntentP1),
		IntentP2:        float64(h.IntentP2),
		IntentP3:        float64(h.IntentP3),
		IntentCode:      int32(h.IntentCode),
		IntentName:      int8String(h.IntentName[:]),
		VoxOffset:       int64(h.VoxOffset),
		SclSlope:        float64(h.SclSlope),
		SclInter:        float64(h.SclInter),
		CalMax:          float64(h.CalMax),
		CalMin:          float64(h.CalMin),
		SliceDuration:   float64(h.SliceDuration),
		TOffset:         float64(h.TOffset),
		SliceStart:      int64(h.SliceStart),
		SliceEnd:        int64(h.SliceEnd),
		SliceCode:       int32(uint8(h.SliceCode)),
		Description:     int8String(h.Descrip[:]),
		AuxFile:         int8String(h.AuxFile[:]),
		QformCode:       int32(h.QFormCode),
		SformCode:       int32(h.SFormCode),
		QuaternB:        float64(h.QuaternB),
		QuaternC:        float64(h.QuaternC),
		QuaternD:        float64(h.QuaternD),
		QoffsetX:        float64(h.QOffsetX),
		QoffsetY:        float64(h.QOffsetY),
		QoffsetZ:        float64(h.QOffsetZ),
		XYZTUnits:       int32(uint8(h.XYZTUnits)),
		DimInfo:         byte(h.DimInfo),
		ExtensionFlag:   ext.Flag,
		ExtensionSize:   ext.Size,
		ExtensionCode:   ext.Code,
	}

	for i := range h.Magic {
		w.Magic[i] = byte(h.Magic[i])
	}
	for i := range h.Dim {
		w.Dims[i] = int64(h.Dim[i])
		w.PixDims[i] = float64(h.PixDim[i])
	}
	for i, row := range [3][4]float32{h.SRowX, h.SRowY, h.SRowZ} {
		for j, v := range row {
			w.Affine[i][j] = float64(v)
		}
	}
	w.Affine[3] = [4]float64{0, 0, 0, 1}

	return w
}

func int8String(s []int8) string {
	b := make([]byte, len(s))
	for i, c := range s {
		b[i] = byte(c)
	}
	return nifti.TrimNul(b)
}
