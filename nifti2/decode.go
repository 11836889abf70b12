package nifti2

import (
	"encoding/binary"

	"github.com/kaczmarj/gonifti/nifti"
	log "github.com/sirupsen/logrus"
)

// Decoder reads nifti2 headers. The zero value is not usable; use NewDecoder.
type Decoder struct {
	Extensions nifti.ExtensionReader
}

// NewDecoder returns a Decoder using the standard extension reader.
func NewDecoder() *Decoder {
	return &Decoder{Extensions: nifti.Extensions{}}
}

var defaultDecoder = NewDecoder()

// ReadHeader decodes b with the default Decoder.
func ReadHeader(b []byte) (*Header, error) {
	return defaultDecoder.Decode(b)
}

// Decode reads a nifti2 header from b. The byte order is probed on the
// sizeof_hdr cookie before anything else is read. Either the whole header is
// decoded or an error is returned; a *nifti.FormatError reports a bad cookie
// or a buffer too short for some field.
func (d *Decoder) Decode(b []byte) (*Header, error) {
	log.Debug("Reading nifti2 header ...")

	order, err := nifti.ProbeCookie(b, HeaderSize)
	if err != nil {
		return nil, err
	}

	h := newHeader()
	h.LittleEndian = order == binary.LittleEndian

	log.WithFields(log.Fields{
		"byteOrder": order,
	}).Debug("Found byte order")

	r := nifti.NewByteReader(b, order)
	readFields(r, h)
	if err := r.Err(); err != nil {
		return nil, err
	}

	if len(b) > HeaderSize {
		if err := d.readExtension(b, r, h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// readFields reads every fixed field at its absolute offset.
func readFields(r *nifti.ByteReader, h *Header) {
	for i := 0; i < 8; i++ {
		h.Magic[i] = r.Byte(4 + i)
	}

	h.DatatypeCode = r.Int16(12)
	h.NumBitsPerVoxel = r.Int16(14)

	for i := range h.Dims {
		h.Dims[i] = r.Int64(16 + 8*i)
	}

	h.IntentP1 = r.Float64(80)
	h.IntentP2 = r.Float64(88)
	h.IntentP3 = r.Float64(96)

	for i := range h.PixDims {
		h.PixDims[i] = r.Float64(104 + 8*i)
	}

	h.VoxOffset = r.Int64(168)

	h.SclSlope = r.Float64(176)
	h.SclInter = r.Float64(184)
	h.CalMax = r.Float64(192)
	h.CalMin = r.Float64(200)

	h.SliceDuration = r.Float64(208)
	h.TOffset = r.Float64(216)
	h.SliceStart = r.Int64(224)
	h.SliceEnd = r.Int64(232)

	h.Description = r.String(240, 240+80)
	h.AuxFile = r.String(320, 320+24)

	h.QformCode = r.Int32(344)
	h.SformCode = r.Int32(348)

	h.QuaternB = r.Float64(352)
	h.QuaternC = r.Float64(360)
	h.QuaternD = r.Float64(368)
	h.QoffsetX = r.Float64(376)
	h.QoffsetY = r.Float64(384)
	h.QoffsetZ = r.Float64(392)

	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			h.Affine[row][col] = r.Float64(400 + 8*(4*row+col))
		}
	}
	h.Affine[3] = [4]float64{0, 0, 0, 1}

	h.SliceCode = r.Int32(496)
	h.XYZTUnits = r.Int32(500)
	h.IntentCode = r.Int32(504)
	h.IntentName = r.String(508, 508+16)

	h.DimInfo = r.Byte(524)
}

func (d *Decoder) readExtension(b []byte, r *nifti.ByteReader, h *Header) error {
	for i := range h.ExtensionFlag {
		h.ExtensionFlag[i] = r.Byte(HeaderSize + i)
	}
	if err := r.Err(); err != nil {
		return err
	}
	if !h.HasExtension() {
		return nil
	}

	loc := nifti.ExtensionLocation(HeaderSize)
	size, err := d.Extensions.ExtensionSize(b, loc, r.ByteOrder())
	if err != nil {
		return err
	}
	code, err := d.Extensions.ExtensionCode(b, loc, r.ByteOrder())
	if err != nil {
		return err
	}
	h.ExtensionSize = size
	h.ExtensionCode = code

	log.WithFields(log.Fields{
		"extensionSize": size,
		"extensionCode": code,
	}).Debug("Found extension")
	return nil
}
