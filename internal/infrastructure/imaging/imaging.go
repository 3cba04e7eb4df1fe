// Package imaging prepares listing photos for upload: large images are
// scaled down and re-encoded as JPEG under the marketplace's payload limit.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // staged photos may arrive as PNG
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

var (
	// ErrUnsupportedFormat indicates an image that is neither JPEG nor PNG
	ErrUnsupportedFormat = errors.New("imaging: unsupported image format")
)

const (
	// DefaultMaxDimension is the longest edge after scaling.
	DefaultMaxDimension = 1600
	// DefaultQuality is the first-pass JPEG quality.
	DefaultQuality = 85
	// FallbackQuality is used when the first pass is still over the limit.
	FallbackQuality = 72
	// DefaultMaxBytes is the marketplace's per-picture payload limit.
	DefaultMaxBytes = 3 * 1024 * 1024
)

// Compressor scales and re-encodes photos. The zero value is not usable;
// construct with NewCompressor.
type Compressor struct {
	maxDimension int
	quality      int
	fallback     int
	maxBytes     int
}

// NewCompressor returns a compressor with the marketplace defaults.
func NewCompressor() *Compressor {
	return &Compressor{
		maxDimension: DefaultMaxDimension,
		quality:      DefaultQuality,
		fallback:     FallbackQuality,
		maxBytes:     DefaultMaxBytes,
	}
}

// CompressFile reads a staged photo, scales it to the size cap and writes the
// JPEG result next to the source with a .jpg suffix. It returns the output
// path. The source file is left untouched.
func (c *Compressor) CompressFile(srcPath string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("imaging: open %s: %w", filepath.Base(srcPath), err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(srcPath))
	}

	data, err := c.Compress(img)
	if err != nil {
		return "", err
	}

	outPath := srcPath + ".prepared.jpg"
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return "", fmt.Errorf("imaging: write %s: %w", filepath.Base(outPath), err)
	}
	return outPath, nil
}

// Compress scales the image so its longest edge is within the cap and encodes
// it as JPEG. If the first encode exceeds the byte limit it re-encodes once at
// the fallback quality and returns that result regardless of size.
func (c *Compressor) Compress(img image.Image) ([]byte, error) {
	scaled := c.scale(img)

	data, err := encodeJPEG(scaled, c.quality)
	if err != nil {
		return nil, err
	}
	if len(data) <= c.maxBytes {
		return data, nil
	}
	return encodeJPEG(scaled, c.fallback)
}

// scale shrinks the image to the dimension cap, preserving aspect ratio.
// Images already within the cap pass through unscaled.
func (c *Compressor) scale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= c.maxDimension && h <= c.maxDimension {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = c.maxDimension
		nh = h * c.maxDimension / w
	} else {
		nh = c.maxDimension
		nw = w * c.maxDimension / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
