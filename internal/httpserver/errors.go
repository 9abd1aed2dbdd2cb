package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
)

// statusOf maps service error categories to HTTP codes. Coupon errors are
// checked first: an unknown coupon is both NotFound and InvalidCoupon.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCoupon):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail logs op_error and converts err into an HTTP error. Internal details
// are not sent to the client.
func fail(l *slog.Logger, op string, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "reason", "internal error", "error", err)
		return echo.NewHTTPError(status, "internal error")
	}
	l.Warn(op+"_error", "status", status, "reason", err.Error())
	return echo.NewHTTPError(status, err.Error())
}

func badRequest(l *slog.Logger, op, reason string, err error) error {
	l.Warn(op+"_error", "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

func unauthorized(l *slog.Logger, op string, err error) error {
	l.Warn(op+"_error", "status", http.StatusUnauthorized, "reason", "unauthorized", "error", err)
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

func paramID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(v), nil
}
