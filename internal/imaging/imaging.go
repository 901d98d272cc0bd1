// Package imaging converts inbound photos to the fixed format the
// inference providers are fed with.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// ReencodeJPEG decodes an image in any supported inbound format
// (JPEG, PNG, GIF, WebP) and re-encodes it as JPEG.
func ReencodeJPEG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg (from %s): %w", format, err)
	}

	return buf.Bytes(), nil
}
