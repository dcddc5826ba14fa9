package rest

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/nursesim/prontuario/internal/platform/jsondec"
)

// BindStrict decodes the JSON request body into dst. Unknown fields, type
// mismatches, trailing data and malformed JSON all become validation errors.
func BindStrict(c echo.Context, dst interface{}) error {
	data, err := ReadBody(c)
	if err != nil {
		return err
	}
	return jsondec.Strict(data, dst)
}

// ReadBody returns the raw request body. Errors raised by the body limit
// middleware are passed through unchanged.
func ReadBody(c echo.Context) ([]byte, error) {
	body := c.Request().Body
	if body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return data, nil
}
