package nifti2

import (
	"encoding/binary"
	"math"
)

// encodeHeader lays h out at the nifti2 offsets in the given byte order.
// size is the length of the returned buffer and must be at least HeaderSize.
func encodeHeader(h *Header, order binary.ByteOrder, size int) []byte {
	b := make([]byte, size)
	i16 := func(off int, v int16) { order.PutUint16(b[off:], uint16(v)) }
	i32 := func(off int, v int32) { order.PutUint32(b[off:], uint32(v)) }
	i64 := func(off int, v int64) { order.PutUint64(b[off:], uint64(v)) }
	f64 := func(off int, v float64) { order.PutUint64(b[off:], math.Float64bits(v)) }

	i32(0, HeaderSize)
	copy(b[4:12], h.Magic[:])
	i16(12, h.DatatypeCode)
	i16(14, h.NumBitsPerVoxel)
	for i, v := range h.Dims {
		i64(16+8*i, v)
	}
	f64(80, h.IntentP1)
	f64(88, h.IntentP2)
	f64(96, h.IntentP3)
	for i, v := range h.PixDims {
		f64(104+8*i, v)
	}
	i64(168, h.VoxOffset)
	f64(176, h.SclSlope)
	f64(184, h.SclInter)
	f64(192, h.CalMax)
	f64(200, h.CalMin)
	f64(208, h.SliceDuration)
	f64(216, h.TOffset)
	i64(224, h.SliceStart)
	i64(232, h.SliceEnd)
	copy(b[240:320], h.Description)
	copy(b[320:344], h.AuxFile)
	i32(344, h.QformCode)
	i32(348, h.SformCode)
	f64(352, h.QuaternB)
	f64(360, h.QuaternC)
	f64(368, h.QuaternD)
	f64(376, h.QoffsetX)
	f64(384, h.QoffsetY)
	f64(392, h.QoffsetZ)
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			f64(400+8*(4*row+col), h.Affine[row][col])
		}
	}
	i32(496, h.SliceCode)
	i32(500, h.XYZTUnits)
	i32(504, h.IntentCode)
	copy(b[508:524], h.IntentName)
	b[524] = h.DimInfo

	if size >= HeaderSize+4 {
		copy(b[HeaderSize:], h.ExtensionFlag[:])
	}
	if size >= HeaderSize+12 {
		i32(HeaderSize+4, h.ExtensionSize)
		i32(HeaderSize+8, h.ExtensionCode)
	}
	return b
}

// sampleHeader returns a header with a distinct value in every field.
func sampleHeader() *Header {
	return &Header{
		Magic:           [8]byte{'n', '+', '2', 0, '\r', '\n', 0x1a, '\n'},
		DatatypeCode:    16,
		NumBitsPerVoxel: 32,
		Dims:            [8]int64{4, 64, 64, 30, 120, 1, 1, 1},
		PixDims:         [8]float64{-1, 3, 3, 4.5, 2, 0, 0, 0},
		IntentP1:        0.5,
		IntentP2:        1.5,
		IntentP3:        2.5,
		IntentCode:      5,
		IntentName:      "t-test",
		VoxOffset:       544,
		SclSlope:        2,
		SclInter:        -10,
		CalMax:          1000,
		CalMin:          -5,
		SliceDuration:   0.07,
		TOffset:         1.25,
		SliceStart:      1,
		SliceEnd:        29,
		SliceCode:       3,
		Description:     "FSL5.0",
		AuxFile:         "aux.txt",
		QformCode:       1,
		SformCode:       4,
		QuaternB:        0,
		QuaternC:        1,
		QuaternD:        0,
		QoffsetX:        90,
		QoffsetY:        -126,
		QoffsetZ:        -72,
		Affine: [4][4]float64{
			{-3, 0, 0, 90},
			{0, 3, 0, -126},
			{0, 0, 4.5, -72},
			{0, 0, 0, 1},
		},
		XYZTUnits: 10,
		DimInfo:   57,
	}
}
