package imageinfo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const FormatSVG = "svg"

var ErrUnknownFormat = errors.New("unknown image format")

// Info describes an image without decoding its pixels.
type Info struct {
	Format string
	Width  int
	Height int
}

// Probe reads the format and dimensions of data. It never modifies data.
func Probe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("%w: empty input", ErrUnknownFormat)
	}

	if isSVGData(data) {
		return probeSVG(data)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return Info{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return Info{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func probeSVG(data []byte) (Info, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return Info{}, fmt.Errorf("failed to parse SVG: %w", err)
	}
	return Info{
		Format: FormatSVG,
		Width:  int(math.Round(icon.ViewBox.W)),
		Height: int(math.Round(icon.ViewBox.H)),
	}, nil
}

// isSVGData performs a lightweight detection of SVG content from raw bytes.
// Only the first 4KB are inspected.
func isSVGData(data []byte) bool {
	n := len(data)
	if n > 4096 {
		n = 4096
	}
	header := bytes.ToLower(bytes.TrimSpace(data[:n]))
	return bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte(`xmlns="http://www.w3.org/2000/svg"`)) ||
		bytes.Contains(header, []byte("xmlns='http://www.w3.org/2000/svg'"))
}
