package imagehost

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Fixed output of every upload: a 16:9 cover crop re-encoded as JPEG.
const (
	TargetWidth  = 1600
	TargetHeight = 900
	jpegQuality  = 80

	// MaxPixels bounds the decoded size of an upload.
	MaxPixels = 40_000_000
)

var (
	ErrEmptyImage    = errors.New("image has no pixels")
	ErrTooManyPixels = fmt.Errorf("image dimensions exceed %d megapixels", MaxPixels/1_000_000)
)

// Transform decodes r (JPEG, PNG, GIF or WebP), cover-crops it to
// TargetWidth x TargetHeight and returns it as JPEG. Images larger than
// MaxPixels are rejected from their header, before any pixel is decoded.
func Transform(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	dst := fill(src, TargetWidth, TargetHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode %s as jpeg: %w", format, err)
	}
	return buf.Bytes(), nil
}

// fill scales the largest centered w:h region of src to exactly w x h.
func fill(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	cropW, cropH := srcW, srcW*h/w
	if cropH > srcH {
		cropH = srcH
		cropW = srcH * w / h
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}

	x0 := b.Min.X + (srcW-cropW)/2
	y0 := b.Min.Y + (srcH-cropH)/2
	crop := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)
	return dst
}
