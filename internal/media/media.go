// Package media provides photo payload validation and thumbnail
// generation. Photos cross the core boundary as base64 strings; this
// package is the only place that looks inside them.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Validate decodes the payload header and reports format and pixel
// dimensions. Supported formats: jpeg, png, gif, webp.
func Validate(base64Data string) (format string, width, height int, err error) {
	img, format, err := decode(base64Data)
	if err != nil {
		return "", 0, 0, err
	}
	bounds := img.Bounds()
	return format, bounds.Dx(), bounds.Dy(), nil
}

// Thumbnail scales the payload down to fit within maxWidth x maxHeight
// (preserving aspect ratio, never upscaling) and returns it re-encoded
// as a base64 JPEG. The list screen renders these instead of shipping
// full payloads.
func Thumbnail(base64Data string, maxWidth, maxHeight int) (string, error) {
	img, _, err := decode(base64Data)
	if err != nil {
		return "", err
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decode(base64Data string) (image.Image, string, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, "", fmt.Errorf("payload is not valid base64: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}
