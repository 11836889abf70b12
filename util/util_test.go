package util

import (
	"bytes"
	"compress/gzip"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeaderBytes_Limit(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := bytes.Repeat([]byte{1}, 4096)
	require.NoError(t, afero.WriteFile(fs, "/brain.nii", data, 0o644))

	b, err := ReadHeaderBytes(fs, "/brain.nii", DefaultLimit)
	require.NoError(t, err)
	assert.Len(t, b, DefaultLimit)
}

func TestReadHeaderBytes_ShortFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/short.nii", []byte{1, 2, 3}, 0o644))

	b, err := ReadHeaderBytes(fs, "/short.nii", DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestReadHeaderBytes_Missing(t *testing.T) {
	_, err := ReadHeaderBytes(afero.NewMemMapFs(), "/missing.nii", DefaultLimit)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadHeaderBytes_RejectsGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(make([]byte, 540))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/brain.nii.gz", buf.Bytes(), 0o644))

	_, err = ReadHeaderBytes(fs, "/brain.nii.gz", DefaultLimit)
	assert.ErrorIs(t, err, ErrCompressed)
}
