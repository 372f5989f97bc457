package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	UpdateContact(ctx context.Context, id primitive.ObjectID, contact models.Contact) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type bookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(coll *mongo.Collection) BookingRepository {
	return &bookingRepository{coll: coll}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) (primitive.ObjectID, error) {
	doc := bson.D{
		{Key: "flight_code", Value: booking.FlightCode},
		{Key: "name", Value: booking.Name},
		{Key: "phone", Value: booking.Phone},
		{Key: "email", Value: booking.Email},
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, classify("insert booking", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert booking: unexpected id type %T", res.InsertedID)
	}
	booking.ID = id
	return id, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.D{{Key: models.IDKey, Value: id}}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDocumentNotFound
		}
		return nil, classify("find booking", err)
	}
	return &booking, nil
}

// UpdateContact sets name, phone and email only. A missing booking is not an error.
func (r *bookingRepository) UpdateContact(ctx context.Context, id primitive.ObjectID, contact models.Contact) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: contact.Name},
		{Key: "phone", Value: contact.Phone},
		{Key: "email", Value: contact.Email},
	}}}
	if _, err := r.coll.UpdateOne(ctx, bson.D{{Key: models.IDKey, Value: id}}, update); err != nil {
		return classify("update booking", err)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: models.IDKey, Value: id}}); err != nil {
		return classify("delete booking", err)
	}
	return nil
}
