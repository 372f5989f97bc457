package handler

import (
	"net/http"

	"github.com/Eursukkul/flight-booking-service/internal/dto"
	"github.com/Eursukkul/flight-booking-service/internal/service"
	"github.com/Eursukkul/flight-booking-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// Example ids used when the id query parameter is absent.
const (
	defaultBookingID  = "65ae2c49da8523f7119ba48f"
	defaultFlightCode = "VNA0002"
)

type BookingHandler struct {
	flights  service.FlightService
	bookings service.BookingService
}

func NewBookingHandler(flights service.FlightService, bookings service.BookingService) *BookingHandler {
	return &BookingHandler{flights: flights, bookings: bookings}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/booking")
	g.GET("/get_list_flight", h.ListFlights)
	g.GET("/get_book", h.GetBooking)
	g.GET("/get_flight", h.GetFlight)
	g.POST("/booking_flight", h.CreateBooking)
	g.PUT("/update_info", h.UpdateInfo)
	g.DELETE("/delete_info", h.DeleteInfo)
}

func (h *BookingHandler) ListFlights(c echo.Context) error {
	flights, err := h.flights.ListFlights(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.FlightListResponse{Flights: flights})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id := queryID(c, defaultBookingID)

	booking, err := h.bookings.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DocumentResponse{Flight: booking})
}

func (h *BookingHandler) GetFlight(c echo.Context) error {
	code := queryID(c, defaultFlightCode)

	flight, err := h.flights.GetFlight(c.Request().Context(), code)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DocumentResponse{Flight: flight})
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.BookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.bookings.CreateBooking(c.Request().Context(), req.ToModel())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingCreatedResponse{IDBooking: id})
}

func (h *BookingHandler) UpdateInfo(c echo.Context) error {
	var req dto.TicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.bookings.UpdateContact(c.Request().Context(), req.BookingID, req.Contact()); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ResultResponse{Result: dto.UpdateSuccess})
}

func (h *BookingHandler) DeleteInfo(c echo.Context) error {
	id := queryID(c, defaultBookingID)

	if err := h.bookings.DeleteBooking(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ResultResponse{Result: dto.DeleteSuccess})
}

func queryID(c echo.Context, fallback string) string {
	if !c.QueryParams().Has("id") {
		return fallback
	}
	return c.QueryParam("id")
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, []validation.FieldError{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		if details := validation.Details(err); details != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, details).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
	}
	return nil
}

// toHTTPError maps service error kinds to responses.
func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	switch service.KindOf(err) {
	case service.KindNotFound:
		he = echo.NewHTTPError(http.StatusNotFound, dto.NotFoundDetail)
	case service.KindConnection:
		he = echo.NewHTTPError(http.StatusServiceUnavailable, "Document store unavailable")
	case service.KindValidation:
		he = echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case service.KindMalformedInput:
		he = echo.NewHTTPError(http.StatusBadRequest, "Invalid booking identifier")
	default:
		he = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	return he.SetInternal(err)
}
