package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrCompressed is returned for gzip input, which is not decoded.
var ErrCompressed = errors.New("compressed input is not supported")

// DefaultLimit is enough for either header, its extension flag and the
// size/code pair of the first extension.
const DefaultLimit = 1024

// ReadHeaderBytes returns at most limit bytes from the start of filename.
// Files compressed with gzip are rejected.
func ReadHeaderBytes(fs afero.Fs, filename string, limit int64) ([]byte, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	// This function uses at most 512 bytes.
	mime := http.DetectContentType(content)

	log.WithFields(log.Fields{
		"mimeType": mime,
		"size":     humanize.Bytes(uint64(len(content))),
	}).Debug("Read header bytes")

	if mime == "application/x-gzip" {
		return nil, fmt.Errorf("%s: %w", filename, ErrCompressed)
	}

	return content, nil
}
