// Package imaging normalizes asset photos before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// OutputMIME is the type of every processed photo.
const OutputMIME = "image/jpeg"

// ErrUnsupported is returned for uploads that are not JPEG or PNG.
var ErrUnsupported = errors.New("unsupported image format")

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Processor downsizes and re-encodes photos.
type Processor struct {
	// MaxDimension bounds the width and height of the output.
	MaxDimension int
	// Quality is the JPEG quality, 1-100.
	Quality int
}

// NewProcessor returns a Processor with the given size bound and JPEG
// quality 85.
func NewProcessor(maxDimension int) *Processor {
	return &Processor{MaxDimension: maxDimension, Quality: 85}
}

// Process checks the real content type of data (client headers are not
// trusted), shrinks the picture to fit MaxDimension keeping its aspect ratio
// and returns it as JPEG.
func (p *Processor) Process(data []byte) ([]byte, error) {
	if detected := http.DetectContentType(data); !accepted[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = fit(img, p.MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales img down so that neither side exceeds limit. Images already
// within bounds, and a non-positive limit, leave img as is.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return img
	}

	nw, nh := limit, h*limit/w
	if h > w {
		nw, nh = w*limit/h, limit
	}

	dst := image.NewRGBA(image.Rect(0, 0, clampMin1(nw), clampMin1(nh)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func clampMin1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
