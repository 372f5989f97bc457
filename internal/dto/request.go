package dto

import "github.com/Eursukkul/flight-booking-service/internal/models"

type BookingRequest struct {
	FlightCode string `json:"flight_code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required"`
}

// TicketRequest updates the contact fields of an existing booking.
type TicketRequest struct {
	BookingID string `json:"booking_id" validate:"required,mongodb"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

func (r BookingRequest) ToModel() *models.Booking {
	return &models.Booking{
		FlightCode: r.FlightCode,
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
	}
}

func (r TicketRequest) Contact() models.Contact {
	return models.Contact{Name: r.Name, Phone: r.Phone, Email: r.Email}
}
