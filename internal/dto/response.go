package dto

import "github.com/Eursukkul/flight-booking-service/internal/models"

const (
	// NotFoundDetail is the fixed detail of every not-found response.
	NotFoundDetail = "Document or index no exits"

	UpdateSuccess = "Update successfull"
	DeleteSuccess = "Delete successfull"
)

type FlightListResponse struct {
	Flights []models.Document `json:"flights"`
}

// DocumentResponse wraps a single flight or booking. The key is "flight" for both.
type DocumentResponse struct {
	Flight models.Document `json:"flight"`
}

type BookingCreatedResponse struct {
	IDBooking string `json:"id_booking"`
}

type ResultResponse struct {
	Result string `json:"result"`
}

// ErrorResponse carries either a message or a list of field errors.
type ErrorResponse struct {
	Detail any `json:"detail"`
}
