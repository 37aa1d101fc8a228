package core

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}

func TestDecodeImageData(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngSignature)
	unpadded := base64.RawStdEncoding.EncodeToString(pngSignature)

	tests := []struct {
		name  string
		input string
	}{
		{"data url", "data:image/png;base64," + encoded},
		{"raw base64", encoded},
		{"jpeg data url", "data:image/jpeg;base64," + encoded},
		{"line wrapped", encoded[:4] + "\r\n" + encoded[4:]},
		{"unpadded", unpadded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeImageData(tt.input)
			if err != nil {
				t.Fatalf("DecodeImageData error: %v", err)
			}
			if !bytes.Equal(got, pngSignature) {
				t.Errorf("DecodeImageData = %v, want %v", got, pngSignature)
			}
		})
	}
}

func TestDecodeImageData_Invalid(t *testing.T) {
	tests := []string{
		"not base64 at all!!",
		"data:image/png;base64,%%%%",
		"abc=d",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := DecodeImageData(input); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}

func TestDecodeImageData_Empty(t *testing.T) {
	for _, input := range []string{"", "data:image/png;base64,", "   "} {
		if _, err := DecodeImageData(input); !errors.Is(err, ErrEmptyImageData) {
			t.Errorf("DecodeImageData(%q) error = %v, want ErrEmptyImageData", input, err)
		}
	}
}

func TestStripDataURLHeader(t *testing.T) {
	tests := map[string]string{
		"data:image/png;base64,QUJD": "QUJD",
		"QUJD":                       "QUJD",
		"base64,base64,QUJD":         "base64,QUJD",
	}
	for input, want := range tests {
		if got := stripDataURLHeader(input); got != want {
			t.Errorf("stripDataURLHeader(%q) = %q, want %q", input, got, want)
		}
	}
}
