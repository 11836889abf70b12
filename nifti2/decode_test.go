package nifti2

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/kaczmarj/gonifti/nifti"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeader_BigEndian(t *testing.T) {
	want := sampleHeader()
	h, err := ReadHeader(encodeHeader(want, binary.BigEndian, HeaderSize))
	require.NoError(t, err)

	assert.False(t, h.LittleEndian)
	assert.Equal(t, binary.BigEndian, h.ByteOrder())
	assert.Equal(t, want, h)
}

func TestReadHeader_LittleEndianMatchesBigEndian(t *testing.T) {
	want := sampleHeader()

	big, err := ReadHeader(encodeHeader(want, binary.BigEndian, HeaderSize))
	require.NoError(t, err)
	little, err := ReadHeader(encodeHeader(want, binary.LittleEndian, HeaderSize))
	require.NoError(t, err)

	assert.True(t, little.LittleEndian)
	assert.Equal(t, binary.LittleEndian, little.ByteOrder())

	little.LittleEndian = false
	assert.Equal(t, big, little)
}

func TestReadHeader_InvalidMagic(t *testing.T) {
	b := encodeHeader(sampleHeader(), binary.BigEndian, HeaderSize)
	binary.BigEndian.PutUint32(b, 348)

	h, err := ReadHeader(b)
	assert.Nil(t, h)
	assert.True(t, errors.Is(err, nifti.ErrInvalidMagic))
	assert.False(t, errors.Is(err, nifti.ErrTruncated))
}

func TestReadHeader_InvalidMagicReadsNothingElse(t *testing.T) {
	// Only the cookie is present; any further read would report Truncated.
	h, err := ReadHeader([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Nil(t, h)
	assert.ErrorIs(t, err, nifti.ErrInvalidMagic)
}

func TestReadHeader_TooShortForCookie(t *testing.T) {
	_, err := ReadHeader([]byte{0, 0})
	assert.ErrorIs(t, err, nifti.ErrTruncated)

	_, err = ReadHeader(nil)
	assert.ErrorIs(t, err, nifti.ErrTruncated)
}

func TestReadHeader_Truncated(t *testing.T) {
	b := encodeHeader(sampleHeader(), binary.LittleEndian, HeaderSize)

	h, err := ReadHeader(b[:400])
	assert.Nil(t, h)
	require.ErrorIs(t, err, nifti.ErrTruncated)

	var fe *nifti.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 400, fe.Offset)
	assert.Equal(t, 8, fe.Width)
	assert.Equal(t, 400, fe.Len)
}

func TestReadHeader_TruncatedAtDimInfo(t *testing.T) {
	b := encodeHeader(sampleHeader(), binary.BigEndian, HeaderSize)

	_, err := ReadHeader(b[:524])
	assert.ErrorIs(t, err, nifti.ErrTruncated)

	// dim_info is the last fixed field read.
	h, err := ReadHeader(b[:525])
	require.NoError(t, err)
	assert.Equal(t, byte(57), h.DimInfo)
}

func TestReadHeader_AffineLastRowIsFixed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		b := make([]byte, HeaderSize)
		rng.Read(b)
		binary.LittleEndian.PutUint32(b, HeaderSize)

		h, err := ReadHeader(b)
		require.NoError(t, err)
		assert.Equal(t, [4]float64{0, 0, 0, 1}, h.Affine[3])
		assert.True(t, h.LittleEndian)
	}
}

func TestReadHeader_NoExtensionAt540(t *testing.T) {
	want := sampleHeader()
	want.ExtensionFlag = [4]byte{1, 0, 0, 0}

	// The flag is beyond the buffer and never read.
	h, err := ReadHeader(encodeHeader(want, binary.BigEndian, HeaderSize))
	require.NoError(t, err)
	assert.Equal(t, [4]byte{}, h.ExtensionFlag)
	assert.False(t, h.HasExtension())
	assert.Zero(t, h.ExtensionSize)
	assert.Zero(t, h.ExtensionCode)
}

func TestReadHeader_ExtensionFlagZero(t *testing.T) {
	want := sampleHeader()
	want.ExtensionSize = 32
	want.ExtensionCode = 4

	h, err := ReadHeader(encodeHeader(want, binary.BigEndian, HeaderSize+16))
	require.NoError(t, err)
	assert.False(t, h.HasExtension())
	assert.Zero(t, h.ExtensionSize)
	assert.Zero(t, h.ExtensionCode)
}

func TestReadHeader_Extension(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			want := sampleHeader()
			want.ExtensionFlag = [4]byte{1, 0, 0, 0}
			want.ExtensionSize = 32
			want.ExtensionCode = 6

			h, err := ReadHeader(encodeHeader(want, order, HeaderSize+4+32))
			require.NoError(t, err)
			assert.True(t, h.HasExtension())
			assert.Equal(t, [4]byte{1, 0, 0, 0}, h.ExtensionFlag)
			assert.Equal(t, int32(32), h.ExtensionSize)
			assert.Equal(t, int32(6), h.ExtensionCode)
		})
	}
}

func TestReadHeader_ExtensionTruncated(t *testing.T) {
	want := sampleHeader()
	want.ExtensionFlag = [4]byte{1, 0, 0, 0}
	b := encodeHeader(want, binary.BigEndian, HeaderSize+12)

	_, err := ReadHeader(b[:HeaderSize+4])
	assert.ErrorIs(t, err, nifti.ErrTruncated)

	_, err = ReadHeader(b[:HeaderSize+2])
	assert.ErrorIs(t, err, nifti.ErrTruncated)
}

type recordingExtensions struct {
	locations []int
	orders    []binary.ByteOrder
}

func (r *recordingExtensions) ExtensionSize(b []byte, location int, order binary.ByteOrder) (int32, error) {
	r.locations = append(r.locations, location)
	r.orders = append(r.orders, order)
	return 16, nil
}

func (r *recordingExtensions) ExtensionCode(b []byte, location int, order binary.ByteOrder) (int32, error) {
	r.locations = append(r.locations, location)
	r.orders = append(r.orders, order)
	return 40, nil
}

func TestDecoder_DelegatesToExtensionReader(t *testing.T) {
	want := sampleHeader()
	want.ExtensionFlag = [4]byte{1, 0, 0, 0}
	b := encodeHeader(want, binary.LittleEndian, HeaderSize+4)

	ext := &recordingExtensions{}
	h, err := (&Decoder{Extensions: ext}).Decode(b)
	require.NoError(t, err)

	assert.Equal(t, []int{544, 544}, ext.locations)
	assert.Equal(t, []binary.ByteOrder{binary.LittleEndian, binary.LittleEndian}, ext.orders)
	assert.Equal(t, int32(16), h.ExtensionSize)
	assert.Equal(t, int32(40), h.ExtensionCode)
}

func TestDecoder_NoExtensionSkipsReader(t *testing.T) {
	ext := &recordingExtensions{}
	_, err := (&Decoder{Extensions: ext}).Decode(encodeHeader(sampleHeader(), binary.BigEndian, HeaderSize+4))
	require.NoError(t, err)
	assert.Empty(t, ext.locations)
}

func TestReadHeader_TextFields(t *testing.T) {
	want := sampleHeader()
	b := encodeHeader(want, binary.BigEndian, HeaderSize)

	long := strings.Repeat("d", 80)
	copy(b[240:320], long)
	copy(b[320:344], strings.Repeat("a", 24))
	copy(b[508:524], "fmri\x00garbage")

	h, err := ReadHeader(b)
	require.NoError(t, err)
	assert.Equal(t, long, h.Description)
	assert.Equal(t, strings.Repeat("a", 24), h.AuxFile)
	assert.Equal(t, "fmri", h.IntentName)
}

func TestReadHeader_Defaults(t *testing.T) {
	h := newHeader()
	assert.Equal(t, 1.0, h.SclSlope)
	assert.Equal(t, 0.0, h.SclInter)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, h.Affine[3])
}

func TestReadHeader_Units(t *testing.T) {
	h, err := ReadHeader(encodeHeader(sampleHeader(), binary.BigEndian, HeaderSize))
	require.NoError(t, err)
	assert.Equal(t, nifti.UnitsMM, h.SpatialUnits())
	assert.Equal(t, nifti.UnitsSec, h.TemporalUnits())
}

func TestReadHeader_Concurrent(t *testing.T) {
	b := encodeHeader(sampleHeader(), binary.LittleEndian, HeaderSize)
	want, err := ReadHeader(b)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Header, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ReadHeader(b)
		}(i)
	}
	wg.Wait()

	for _, h := range results {
		assert.Equal(t, want, h)
		assert.NotSame(t, want, h)
	}
}

func TestHeader_QformMat(t *testing.T) {
	h, err := ReadHeader(encodeHeader(sampleHeader(), binary.BigEndian, HeaderSize))
	require.NoError(t, err)

	// c = 1 is a 180 degree rotation about y; qfac = -1 flips z back.
	m := h.QformMat()
	assert.InDelta(t, -3, m[0][0], 1e-12)
	assert.InDelta(t, 3, m[1][1], 1e-12)
	assert.InDelta(t, 4.5, m[2][2], 1e-12)
	assert.Equal(t, 90.0, m[0][3])
	assert.Equal(t, -126.0, m[1][3])
	assert.Equal(t, -72.0, m[2][3])
	assert.Equal(t, h.SformMat(), m)
}

func TestHeader_Orientation(t *testing.T) {
	h, err := ReadHeader(encodeHeader(sampleHeader(), binary.BigEndian, HeaderSize))
	require.NoError(t, err)

	code, ok := h.Orientation()
	require.True(t, ok)
	assert.Equal(t, "XYZ-++", code)
}
