package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{40, 120, 200, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h)); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(w, h), nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	return cfg.Width, cfg.Height
}

func TestProcessKeepsSmallImages(t *testing.T) {
	out, err := NewProcessor(1024).Process(encodePNG(t, 120, 80))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	w, h := decodedSize(t, out)
	if w != 120 || h != 80 {
		t.Errorf("expected 120x80, got %dx%d", w, h)
	}
}

func TestProcessDownscalesLandscape(t *testing.T) {
	out, err := NewProcessor(100).Process(encodeJPEG(t, 400, 200))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	w, h := decodedSize(t, out)
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
}

func TestProcessDownscalesPortrait(t *testing.T) {
	out, err := NewProcessor(100).Process(encodePNG(t, 50, 300))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	w, h := decodedSize(t, out)
	if w != 16 || h != 100 {
		t.Errorf("expected 16x100, got %dx%d", w, h)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := NewProcessor(100).Process([]byte("GIF89a not really"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}

	_, err = NewProcessor(100).Process([]byte("plain text"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
