package server

import (
	"net/http"

	"github.com/Eursukkul/flight-booking-service/config"
	"github.com/Eursukkul/flight-booking-service/internal/handler"
	"github.com/Eursukkul/flight-booking-service/internal/metrics"
	"github.com/Eursukkul/flight-booking-service/internal/middleware"
	"github.com/Eursukkul/flight-booking-service/internal/validation"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const ServiceName = "flight-booking-service"

// New assembles the Echo application: middleware, health, metrics and the
// booking routes.
func New(cfg *config.Config, log *zerolog.Logger, h *handler.BookingHandler) *echo.Echo {
	metrics.Register()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validation.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())
	e.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))
	e.Use(metrics.Middleware())
	if cfg.MongoDB.Timeout > 0 {
		e.Use(echoMw.ContextTimeoutWithConfig(echoMw.ContextTimeoutConfig{Timeout: cfg.MongoDB.Timeout}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": ServiceName})
	})
	e.GET("/metrics", metrics.Handler())

	h.RegisterRoutes(e)
	return e
}
