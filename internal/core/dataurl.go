package core

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const dataURLMarker = "base64,"

var ErrEmptyImageData = errors.New("image data is empty")

// DecodeImageData decodes a raw Base64 string or a data URL
// (data:image/png;base64,<payload>) into bytes.
func DecodeImageData(imageData string) ([]byte, error) {
	payload := stripDataURLHeader(imageData)
	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)
	if payload == "" {
		return nil, ErrEmptyImageData
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}
	// some encoders drop the trailing padding
	if !strings.HasSuffix(payload, "=") {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(payload); rawErr == nil {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("failed to decode base64 image data: %w", err)
}

// stripDataURLHeader drops everything up to and including the first "base64," marker.
func stripDataURLHeader(imageData string) string {
	if _, encoded, found := strings.Cut(imageData, dataURLMarker); found {
		return encoded
	}
	return imageData
}
