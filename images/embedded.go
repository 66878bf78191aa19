// Package images holds demo pixel data embedded into the binary.
package images

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"io"
)

//go:embed gradient32.icn.gz
var gradient32IcnGz []byte

var imageMap = map[string][]byte{
	"gradient32.icn.gz": gradient32IcnGz,
}

// Icon geometry of the embedded demo images. All of them are 16-bit
// RGB565 with pixels stored most significant byte first.
const (
	GradientName   = "gradient32.icn"
	GradientWidth  = 32
	GradientHeight = 32
)

// GetImage retrieves and decompresses an embedded image file.
// The filename parameter should be the base filename (e.g.
// "gradient32.icn"); this function appends ".gz" to look up the
// embedded compressed file.
func GetImage(filename string) ([]byte, error) {
	gzFilename := filename + ".gz"

	compressedData, ok := imageMap[gzFilename]
	if !ok {
		return nil, fmt.Errorf("embedded image not found: %s (looked for %s)", filename, gzFilename)
	}

	gzReader, err := gzip.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filename, err)
	}
	defer gzReader.Close()

	decompressed, err := io.ReadAll(gzReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", filename, err)
	}

	return decompressed, nil
}
