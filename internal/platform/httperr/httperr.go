// Package httperr translates service errors into echo HTTP errors.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/listview"
	"github.com/clinic/clinic/internal/platform/store"
	"github.com/clinic/clinic/internal/platform/validation"
)

// FromError maps the shared sentinels and validation errors to a status.
// Anything unrecognised becomes a 500 whose message is not exposed.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"fields":  verr.Fields,
		}).SetInternal(err)
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found").SetInternal(err)
	case errors.Is(err, store.ErrDuplicateID):
		return echo.NewHTTPError(http.StatusConflict, "record already exists").SetInternal(err)
	case errors.Is(err, listview.ErrUnknownColumn):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// BadRequest wraps a bind or parse failure.
func BadRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
}
