package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/flight-booking-service/internal/dto"
	"github.com/Eursukkul/flight-booking-service/internal/models"
	"github.com/Eursukkul/flight-booking-service/internal/service"
	"github.com/Eursukkul/flight-booking-service/internal/validation"
	"github.com/Eursukkul/flight-booking-service/pkg/database"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock FlightService ---

type mockFlightService struct {
	listFn func(ctx context.Context) ([]models.Document, error)
	getFn  func(ctx context.Context, code string) (models.Document, error)
}

func (m *mockFlightService) ListFlights(ctx context.Context) ([]models.Document, error) {
	return m.listFn(ctx)
}
func (m *mockFlightService) GetFlight(ctx context.Context, code string) (models.Document, error) {
	return m.getFn(ctx, code)
}

// --- Mock BookingService ---

type mockBookingService struct {
	getFn    func(ctx context.Context, id string) (models.Document, error)
	createFn func(ctx context.Context, b *models.Booking) (string, error)
	updateFn func(ctx context.Context, id string, c models.Contact) error
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockBookingService) GetBooking(ctx context.Context, id string) (models.Document, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) CreateBooking(ctx context.Context, b *models.Booking) (string, error) {
	return m.createFn(ctx, b)
}
func (m *mockBookingService) UpdateContact(ctx context.Context, id string, c models.Contact) error {
	return m.updateFn(ctx, id, c)
}
func (m *mockBookingService) DeleteBooking(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	assert.Equal(t, code, he.Code)
	return he
}

// --- Tests ---

func TestListFlights_Handler_Success(t *testing.T) {
	flights := &mockFlightService{
		listFn: func(ctx context.Context) ([]models.Document, error) {
			return []models.Document{
				{"_id": "VNA0001", "empty_seat": 3},
				{"_id": "VNA0002", "empty_seat": 0},
			}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/booking/get_list_flight", "")
	err := NewBookingHandler(flights, nil).ListFlights(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Flights []map[string]any `json:"flights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Flights, 2)
	assert.Equal(t, "VNA0001", resp.Flights[0]["_id"])
	assert.Equal(t, float64(3), resp.Flights[0]["empty_seat"])
}

func TestListFlights_Handler_EmptyIsArray(t *testing.T) {
	flights := &mockFlightService{
		listFn: func(ctx context.Context) ([]models.Document, error) { return []models.Document{}, nil },
	}

	c, rec := newContext(http.MethodGet, "/booking/get_list_flight", "")
	require.NoError(t, NewBookingHandler(flights, nil).ListFlights(c))

	assert.JSONEq(t, `{"flights":[]}`, rec.Body.String())
}

func TestListFlights_Handler_ConnectionError(t *testing.T) {
	flights := &mockFlightService{
		listFn: func(ctx context.Context) ([]models.Document, error) {
			return nil, fmt.Errorf("list flights: %w", database.ErrConnection)
		},
	}

	c, _ := newContext(http.MethodGet, "/booking/get_list_flight", "")
	err := NewBookingHandler(flights, nil).ListFlights(c)

	assertHTTPError(t, err, http.StatusServiceUnavailable)
}

func TestGetBooking_Handler_Success(t *testing.T) {
	var gotID string
	bookings := &mockBookingService{
		getFn: func(ctx context.Context, id string) (models.Document, error) {
			gotID = id
			return models.Document{"flight_code": "VNA0002", "name": "A", "phone": "1", "email": "a@x"}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/booking/get_book?id=65ae2c49da8523f7119ba490", "")
	err := NewBookingHandler(nil, bookings).GetBooking(c)

	require.NoError(t, err)
	assert.Equal(t, "65ae2c49da8523f7119ba490", gotID)
	assert.JSONEq(t, `{"flight":{"flight_code":"VNA0002","name":"A","phone":"1","email":"a@x"}}`, rec.Body.String())
}

func TestGetBooking_Handler_DefaultID(t *testing.T) {
	var gotID string
	bookings := &mockBookingService{
		getFn: func(ctx context.Context, id string) (models.Document, error) {
			gotID = id
			return models.Document{}, nil
		},
	}

	c, _ := newContext(http.MethodGet, "/booking/get_book", "")
	require.NoError(t, NewBookingHandler(nil, bookings).GetBooking(c))

	assert.Equal(t, defaultBookingID, gotID)
}

func TestGetBooking_Handler_NotFound(t *testing.T) {
	bookings := &mockBookingService{
		getFn: func(ctx context.Context, id string) (models.Document, error) {
			return nil, fmt.Errorf("get booking: %w", service.ErrNotFound)
		},
	}

	c, _ := newContext(http.MethodGet, "/booking/get_book?id=65ae2c49da8523f7119ba48f", "")
	err := NewBookingHandler(nil, bookings).GetBooking(c)

	he := assertHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, "Document or index no exits", he.Message)
}

func TestGetFlight_Handler_Success(t *testing.T) {
	flights := &mockFlightService{
		getFn: func(ctx context.Context, code string) (models.Document, error) {
			return models.Document{"_id": code, "empty_seat": 12}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/booking/get_flight?id=VNA0007", "")
	require.NoError(t, NewBookingHandler(flights, nil).GetFlight(c))

	assert.JSONEq(t, `{"flight":{"_id":"VNA0007","empty_seat":12}}`, rec.Body.String())
}

func TestGetFlight_Handler_DefaultCode(t *testing.T) {
	var gotCode string
	flights := &mockFlightService{
		getFn: func(ctx context.Context, code string) (models.Document, error) {
			gotCode = code
			return models.Document{}, nil
		},
	}

	c, _ := newContext(http.MethodGet, "/booking/get_flight", "")
	require.NoError(t, NewBookingHandler(flights, nil).GetFlight(c))

	assert.Equal(t, "VNA0002", gotCode)
}

func TestGetFlight_Handler_NotFound(t *testing.T) {
	flights := &mockFlightService{
		getFn: func(ctx context.Context, code string) (models.Document, error) {
			return nil, service.ErrNotFound
		},
	}

	c, _ := newContext(http.MethodGet, "/booking/get_flight?id=NOPE", "")
	err := NewBookingHandler(flights, nil).GetFlight(c)

	he := assertHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, dto.NotFoundDetail, he.Message)
}

func TestCreateBooking_Handler_Success(t *testing.T) {
	var got *models.Booking
	bookings := &mockBookingService{
		createFn: func(ctx context.Context, b *models.Booking) (string, error) {
			got = b
			return "65ae2c49da8523f7119ba48f", nil
		},
	}

	body := `{"flight_code":"VNA0002","name":"Nguyen Van A","phone":"0901234567","email":"a@example.com"}`
	c, rec := newContext(http.MethodPost, "/booking/booking_flight", body)
	err := NewBookingHandler(nil, bookings).CreateBooking(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id_booking":"65ae2c49da8523f7119ba48f"}`, rec.Body.String())
	assert.Equal(t, &models.Booking{FlightCode: "VNA0002", Name: "Nguyen Van A", Phone: "0901234567", Email: "a@example.com"}, got)
}

func TestCreateBooking_Handler_MissingFields(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/booking/booking_flight", `{"flight_code":"VNA0002","name":"A"}`)
	err := NewBookingHandler(nil, &mockBookingService{}).CreateBooking(c)

	he := assertHTTPError(t, err, http.StatusUnprocessableEntity)
	details, ok := he.Message.([]validation.FieldError)
	require.True(t, ok)
	require.Len(t, details, 2)
	assert.Equal(t, []string{"body", "phone"}, details[0].Loc)
	assert.Equal(t, []string{"body", "email"}, details[1].Loc)
}

func TestCreateBooking_Handler_InvalidJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/booking/booking_flight", `{"flight_code":`)
	err := NewBookingHandler(nil, &mockBookingService{}).CreateBooking(c)

	assertHTTPError(t, err, http.StatusUnprocessableEntity)
}

func TestCreateBooking_Handler_StoreError(t *testing.T) {
	bookings := &mockBookingService{
		createFn: func(ctx context.Context, b *models.Booking) (string, error) {
			return "", errors.New("duplicate key")
		},
	}

	body := `{"flight_code":"VNA0002","name":"A","phone":"1","email":"a@x"}`
	c, _ := newContext(http.MethodPost, "/booking/booking_flight", body)
	err := NewBookingHandler(nil, bookings).CreateBooking(c)

	he := assertHTTPError(t, err, http.StatusInternalServerError)
	assert.NotContains(t, fmt.Sprint(he.Message), "duplicate key")
}

func TestUpdateInfo_Handler_Success(t *testing.T) {
	var gotID string
	var gotContact models.Contact
	bookings := &mockBookingService{
		updateFn: func(ctx context.Context, id string, c models.Contact) error {
			gotID, gotContact = id, c
			return nil
		},
	}

	body := `{"booking_id":"65ae2c49da8523f7119ba48f","name":"Tran B","phone":"0987","email":"b@example.com"}`
	c, rec := newContext(http.MethodPut, "/booking/update_info", body)
	err := NewBookingHandler(nil, bookings).UpdateInfo(c)

	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"Update successfull"}`, rec.Body.String())
	assert.Equal(t, "65ae2c49da8523f7119ba48f", gotID)
	assert.Equal(t, models.Contact{Name: "Tran B", Phone: "0987", Email: "b@example.com"}, gotContact)
}

func TestUpdateInfo_Handler_MalformedBookingID(t *testing.T) {
	body := `{"booking_id":"abc","name":"Tran B","phone":"0987","email":"b@example.com"}`
	c, _ := newContext(http.MethodPut, "/booking/update_info", body)
	err := NewBookingHandler(nil, &mockBookingService{}).UpdateInfo(c)

	he := assertHTTPError(t, err, http.StatusUnprocessableEntity)
	details := he.Message.([]validation.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, []string{"body", "booking_id"}, details[0].Loc)
}

func TestDeleteInfo_Handler_Success(t *testing.T) {
	var gotID string
	bookings := &mockBookingService{
		deleteFn: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	c, rec := newContext(http.MethodDelete, "/booking/delete_info?id=65ae2c49da8523f7119ba491", "")
	err := NewBookingHandler(nil, bookings).DeleteInfo(c)

	require.NoError(t, err)
	assert.Equal(t, "65ae2c49da8523f7119ba491", gotID)
	assert.JSONEq(t, `{"result":"Delete successfull"}`, rec.Body.String())
}

func TestDeleteInfo_Handler_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"missing booking", fmt.Errorf("delete booking: %w", service.ErrNotFound), http.StatusNotFound},
		{"malformed id", fmt.Errorf("delete booking: %w", service.ErrMalformedInput), http.StatusBadRequest},
		{"store down", fmt.Errorf("delete booking: %w", database.ErrConnection), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := &mockBookingService{
				deleteFn: func(ctx context.Context, id string) error { return tc.err },
			}

			c, _ := newContext(http.MethodDelete, "/booking/delete_info?id=x", "")
			err := NewBookingHandler(nil, bookings).DeleteInfo(c)

			he := assertHTTPError(t, err, tc.code)
			assert.ErrorIs(t, he.Internal, tc.err)
		})
	}
}
