package models

import "time"

type BookingAction string

const (
	ActionCreated BookingAction = "booking.created"
	ActionUpdated BookingAction = "booking.updated"
	ActionDeleted BookingAction = "booking.deleted"
)

// BookingEvent is published after a booking write succeeds.
type BookingEvent struct {
	ID         string        `json:"id"`
	Action     BookingAction `json:"action"`
	BookingID  string        `json:"booking_id"`
	FlightCode string        `json:"flight_code,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type CompensationKind string

const (
	CompensateDeleteBooking CompensationKind = "delete_booking"
	CompensateAdjustSeats   CompensationKind = "adjust_seats"
)

// Compensation undoes the first write of a booking saga whose second write
// failed and whose inline rollback could not be applied.
type Compensation struct {
	Kind       CompensationKind `json:"kind"`
	BookingID  string           `json:"booking_id,omitempty"`
	FlightCode string           `json:"flight_code,omitempty"`
	Delta      int              `json:"delta,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}
