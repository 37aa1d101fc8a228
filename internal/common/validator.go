package common

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GenericEchoValidator plugs go-playground validation into echo's Validate hook.
type GenericEchoValidator struct {
	Validator *validator.Validate
}

func NewGenericEchoValidator() *GenericEchoValidator {
	return &GenericEchoValidator{Validator: validator.New()}
}

func (gv *GenericEchoValidator) Validate(i interface{}) error {
	if gv.Validator == nil {
		gv.Validator = validator.New()
	}
	if err := gv.Validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("received invalid request body: %v", err))
	}
	return nil
}

// ErrorMessage returns the human readable part of err, unwrapping echo's HTTPError.
func ErrorMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
