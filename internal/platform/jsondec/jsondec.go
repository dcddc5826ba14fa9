// Package jsondec decodes untrusted JSON payloads strictly. It has no HTTP
// dependency so pure domain code and the CLI can share it with handlers.
package jsondec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// Strict decodes a single JSON value into dst. Unknown fields, type
// mismatches, trailing data and malformed JSON all become validation errors.
func Strict(data []byte, dst interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return apperr.Validation("request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation(describe(err))
	}
	if dec.More() {
		return apperr.Validation("request body must contain a single JSON object")
	}
	return nil
}

func describe(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return strings.Join(ve.Fields, "; ")
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s must be %s, got %s", typeErr.Field, typeErr.Type.String(), typeErr.Value)
		}
		return fmt.Sprintf("request body must be %s, got %s", typeErr.Type.String(), typeErr.Value)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON: unexpected end of input"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "malformed JSON: " + err.Error()
	}
}
