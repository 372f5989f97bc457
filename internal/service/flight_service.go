package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"github.com/Eursukkul/flight-booking-service/internal/repository"
	"github.com/Eursukkul/flight-booking-service/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

type FlightService interface {
	ListFlights(ctx context.Context) ([]models.Document, error)
	GetFlight(ctx context.Context, code string) (models.Document, error)
}

type flightService struct {
	reads repository.ReadOpener
}

func NewFlightService(reads repository.ReadOpener) FlightService {
	return &flightService{reads: reads}
}

func (s *flightService) ListFlights(ctx context.Context) ([]models.Document, error) {
	var flights []models.Document
	err := repository.WithReadSession(ctx, s.reads, func(rs repository.ReadSession) error {
		docs, err := rs.Flights(ctx, bson.D{})
		if err != nil {
			return err
		}
		flights = docs
		return nil
	})
	if err != nil {
		return nil, readFailure("list flights", err)
	}
	return flights, nil
}

func (s *flightService) GetFlight(ctx context.Context, code string) (models.Document, error) {
	var flight models.Document
	err := repository.WithReadSession(ctx, s.reads, func(rs repository.ReadSession) error {
		docs, err := rs.Flights(ctx, bson.D{{Key: models.IDKey, Value: code}})
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("flight %q: %w", code, ErrNotFound)
		}
		flight = docs[0]
		return nil
	})
	if err != nil {
		return nil, readFailure("get flight", err)
	}
	return flight, nil
}

// readFailure keeps connection failures distinct and reports every other
// failure of a query-engine read as not found.
func readFailure(op string, err error) error {
	if errors.Is(err, database.ErrConnection) || errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
}
