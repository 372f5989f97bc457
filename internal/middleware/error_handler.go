package middleware

import (
	"net/http"

	"github.com/Eursukkul/flight-booking-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"detail": ...}. Errors that are not
// *echo.HTTPError become a 500 without leaking their text.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var detail any = http.StatusText(code)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		detail = he.Message
		if he.Internal != nil {
			c.Set(InternalErrorKey, he.Internal)
		}
	} else {
		c.Set(InternalErrorKey, err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, dto.ErrorResponse{Detail: detail})
}
