package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking is a reservation document in the bookings collection.
type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FlightCode string             `bson:"flight_code" json:"flight_code"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
}

// Contact is the part of a booking that may change after creation.
type Contact struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

func (b *Booking) Contact() Contact {
	return Contact{Name: b.Name, Phone: b.Phone, Email: b.Email}
}
