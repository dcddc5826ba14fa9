// Package rest holds the HTTP plumbing shared by the domain handlers: strict
// JSON binding and the mapping from domain errors to responses.
package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// StatusCode maps an error returned by a handler to its HTTP status.
func StatusCode(err error) int {
	var he *echo.HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &he):
		return he.Code
	default:
		return http.StatusInternalServerError
	}
}

// Body renders err as an ErrorBody. Internal errors get a generic message.
func Body(err error) ErrorBody {
	var ve *apperr.ValidationError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		return ErrorBody{Message: "validation failed", Fields: ve.Fields}
	case apperr.IsNotFound(err):
		return ErrorBody{Message: err.Error()}
	case apperr.IsUnavailable(err):
		return ErrorBody{Message: "record store unavailable"}
	case errors.As(err, &he):
		return ErrorBody{Message: fmt.Sprint(he.Message)}
	default:
		return ErrorBody{Message: "internal server error"}
	}
}

// HTTPErrorHandler replaces echo's default handler so every error leaves the
// server as {"message": ...}.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := StatusCode(err)
		if status >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Msg("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, Body(err))
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
