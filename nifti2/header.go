// nifti2 contains methods to read nifti2 headers.
//
// Based on the official definition of the nifti2 header,
// https://nifti.nimh.nih.gov/pub/dist/doc/nifti2.h

package nifti2

import (
	"encoding/binary"

	"github.com/kaczmarj/gonifti/nifti"
	"github.com/kaczmarj/gonifti/xform"
)

// HeaderSize is the size of the fixed header, also stored as its cookie.
const HeaderSize = nifti.Nifti2Cookie

// Header is a decoded nifti2 header.
type Header struct {
	Magic        [8]byte `json:"magic" yaml:"magic"`                 // "n+2\0\r\n\032\n" or "ni2\0..."
	LittleEndian bool    `json:"little_endian" yaml:"little_endian"` // byte order detected from sizeof_hdr

	DatatypeCode    int16 `json:"datatype" yaml:"datatype"` // NIFTI_TYPE_* code
	NumBitsPerVoxel int16 `json:"bitpix" yaml:"bitpix"`     // Number bits/voxel

	Dims    [8]int64   `json:"dim" yaml:"dim"`       // Data array dimensions
	PixDims [8]float64 `json:"pixdim" yaml:"pixdim"` // Grid spacings; PixDims[0] is qfac

	IntentP1   float64 `json:"intent_p1" yaml:"intent_p1"`     // 1st intent parameter
	IntentP2   float64 `json:"intent_p2" yaml:"intent_p2"`     // 2nd intent parameter
	IntentP3   float64 `json:"intent_p3" yaml:"intent_p3"`     // 3rd intent parameter
	IntentCode int32   `json:"intent_code" yaml:"intent_code"` // NIFTI_INTENT_* code
	IntentName string  `json:"intent_name" yaml:"intent_name"` // 'name' or meaning of data

	VoxOffset int64 `json:"vox_offset" yaml:"vox_offset"` // Offset into .nii file

	SclSlope float64 `json:"scl_slope" yaml:"scl_slope"` // Data scaling: slope
	SclInter float64 `json:"scl_inter" yaml:"scl_inter"` // Data scaling: offset
	CalMax   float64 `json:"cal_max" yaml:"cal_max"`     // Max display intensity
	CalMin   float64 `json:"cal_min" yaml:"cal_min"`     // Min display intensity

	SliceDuration float64 `json:"slice_duration" yaml:"slice_duration"` // Time for 1 slice
	TOffset       float64 `json:"toffset" yaml:"toffset"`               // Time axis shift
	SliceStart    int64   `json:"slice_start" yaml:"slice_start"`       // First slice index
	SliceEnd      int64   `json:"slice_end" yaml:"slice_end"`           // Last slice index
	SliceCode     int32   `json:"slice_code" yaml:"slice_code"`         // Slice timing order

	Description string `json:"descrip" yaml:"descrip"`   // Any text you like
	AuxFile     string `json:"aux_file" yaml:"aux_file"` // Auxiliary filename

	QformCode int32 `json:"qform_code" yaml:"qform_code"` // NIFTI_XFORM_* code
	SformCode int32 `json:"sform_code" yaml:"sform_code"` // NIFTI_XFORM_* code

	QuaternB float64 `json:"quatern_b" yaml:"quatern_b"` // Quaternion b param
	QuaternC float64 `json:"quatern_c" yaml:"quatern_c"` // Quaternion c param
	QuaternD float64 `json:"quatern_d" yaml:"quatern_d"` // Quaternion d param
	QoffsetX float64 `json:"qoffset_x" yaml:"qoffset_x"` // Quaternion x shift
	QoffsetY float64 `json:"qoffset_y" yaml:"qoffset_y"` // Quaternion y shift
	QoffsetZ float64 `json:"qoffset_z" yaml:"qoffset_z"` // Quaternion z shift

	Affine xform.Mat44 `json:"affine" yaml:"affine"` // srow_x, srow_y, srow_z and 0,0,0,1

	XYZTUnits int32 `json:"xyzt_units" yaml:"xyzt_units"` // Units of pixdim[1..4]
	DimInfo   byte  `json:"dim_info" yaml:"dim_info"`     // MRI slice ordering

	ExtensionFlag [4]byte `json:"extension" yaml:"extension"`
	ExtensionSize int32   `json:"esize" yaml:"esize"`         // set only when ExtensionFlag[0] != 0
	ExtensionCode int32   `json:"ecode" yaml:"ecode"`         // set only when ExtensionFlag[0] != 0
}

// newHeader returns a Header holding the defaults of an unread header.
func newHeader() *Header {
	return &Header{
		SclSlope: 1,
		SclInter: 0,
		Affine:   xform.Identity44(),
	}
}

// ByteOrder returns the byte order the header was stored in.
func (h *Header) ByteOrder() binary.ByteOrder {
	if h.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// HasExtension reports whether the extension flag announces an extension.
func (h *Header) HasExtension() bool {
	return h.ExtensionFlag[0] != 0
}

// SpatialUnits returns the NIFTI_UNITS_* code of pixdim[1..3].
func (h *Header) SpatialUnits() int {
	return int(h.XYZTUnits) & nifti.SpatialUnitsMask
}

// TemporalUnits returns the NIFTI_UNITS_* code of pixdim[4].
func (h *Header) TemporalUnits() int {
	return int(h.XYZTUnits) & nifti.TemporalUnitsMask
}

// QformMat returns the transform described by the quaternion parameters.
func (h *Header) QformMat() xform.Mat44 {
	return xform.QuaternionToAffine(h.QuaternB, h.QuaternC, h.QuaternD,
		h.QoffsetX, h.QoffsetY, h.QoffsetZ,
		h.PixDims[1], h.PixDims[2], h.PixDims[3], h.PixDims[0])
}

// SformMat returns the stored affine.
func (h *Header) SformMat() xform.Mat44 {
	return h.Affine
}

// Orientation returns the NEMA orientation code of the stored affine.
func (h *Header) Orientation() (string, bool) {
	return xform.SFormToNEMA(h.Affine.Rotation())
}
