package common

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Name   string `validate:"required"`
	Format string `validate:"omitempty,alphanum,max=4"`
}

func TestGenericEchoValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   sampleRequest
		wantErr bool
	}{
		{name: "valid", input: sampleRequest{Name: "a", Format: "png"}, wantErr: false},
		{name: "empty optional", input: sampleRequest{Name: "a"}, wantErr: false},
		{name: "missing required", input: sampleRequest{Format: "png"}, wantErr: true},
		{name: "not alphanumeric", input: sampleRequest{Name: "a", Format: "../x"}, wantErr: true},
		{name: "too long", input: sampleRequest{Name: "a", Format: "abcdef"}, wantErr: true},
	}

	v := NewGenericEchoValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected *echo.HTTPError, got %T", err)
			}
			if he.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, he.Code)
			}
		})
	}
}

func TestGenericEchoValidator_LazyInit(t *testing.T) {
	v := &GenericEchoValidator{}
	if err := v.Validate(sampleRequest{Name: "a"}); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if v.Validator == nil {
		t.Fatal("expected validator to be initialized")
	}
}

func TestErrorMessage(t *testing.T) {
	he := echo.NewHTTPError(http.StatusBadRequest, "bad input")
	if got := ErrorMessage(he); got != "bad input" {
		t.Errorf("ErrorMessage(HTTPError) = %q, want %q", got, "bad input")
	}
	plain := errors.New("plain failure")
	if got := ErrorMessage(plain); !strings.Contains(got, "plain failure") {
		t.Errorf("ErrorMessage(error) = %q, want to contain %q", got, "plain failure")
	}
}
