package imageinfo

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, format string, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %s", format)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestProbe_Raster(t *testing.T) {
	img := createTestImage(40, 25)
	for _, format := range []string{"png", "jpeg", "gif"} {
		t.Run(format, func(t *testing.T) {
			info, err := Probe(encode(t, format, img))
			if err != nil {
				t.Fatalf("Probe error: %v", err)
			}
			if info.Format != format {
				t.Errorf("Format = %q, want %q", info.Format, format)
			}
			if info.Width != 40 || info.Height != 25 {
				t.Errorf("size = %dx%d, want 40x25", info.Width, info.Height)
			}
		})
	}
}

func TestProbe_SVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 80">
  <rect x="0" y="0" width="120" height="80" fill="red"/>
</svg>`)

	info, err := Probe(svg)
	if err != nil {
		t.Fatalf("Probe error: %v", err)
	}
	if info.Format != FormatSVG {
		t.Errorf("Format = %q, want %q", info.Format, FormatSVG)
	}
	if info.Width != 120 || info.Height != 80 {
		t.Errorf("size = %dx%d, want 120x80", info.Width, info.Height)
	}
}

func TestProbe_Unknown(t *testing.T) {
	tests := map[string][]byte{
		"empty":   nil,
		"text":    []byte("hello, this is not an image"),
		"garbage": {0x00, 0x01, 0x02, 0x03, 0x04},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Probe(data)
			if !errors.Is(err, ErrUnknownFormat) {
				t.Fatalf("expected ErrUnknownFormat, got %v", err)
			}
		})
	}
}

func TestIsSVGData(t *testing.T) {
	if !isSVGData([]byte("  <SVG width='1' height='1'></SVG>")) {
		t.Error("expected uppercase SVG tag to be detected")
	}
	if isSVGData([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}) {
		t.Error("PNG signature detected as SVG")
	}
}
