package repository

import (
	"context"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EmptySeatField is the seat counter on a flight document.
const EmptySeatField = "empty_seat"

type FlightRepository interface {
	AdjustEmptySeats(ctx context.Context, flightCode string, delta int) error
}

type flightRepository struct {
	coll *mongo.Collection
}

func NewFlightRepository(coll *mongo.Collection) FlightRepository {
	return &flightRepository{coll: coll}
}

// AdjustEmptySeats atomically adds delta to the flight's seat counter.
// An unknown flight code matches nothing and is not an error.
func (r *flightRepository) AdjustEmptySeats(ctx context.Context, flightCode string, delta int) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: models.IDKey, Value: flightCode}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: EmptySeatField, Value: delta}}}},
	)
	if err != nil {
		return classify("adjust empty seats", err)
	}
	return nil
}
