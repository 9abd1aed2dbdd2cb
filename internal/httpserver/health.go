package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func ready(p Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if p == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			logging.FromContext(ctx).Error("ready_error", "status", 503, "reason", "database unreachable", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}
