package repository

import (
	"context"
	"errors"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrDocumentNotFound is returned when a lookup matches no document.
var ErrDocumentNotFound = errors.New("document not found")

// WriteSession is a direct store connection scoped to one request.
type WriteSession interface {
	Bookings() BookingRepository
	Flights() FlightRepository
	Close(ctx context.Context) error
}

// ReadSession is a query-engine session scoped to one request.
// Each call loads the documents of a collection that match an equality filter;
// an empty filter loads the whole collection.
type ReadSession interface {
	Flights(ctx context.Context, match bson.D) ([]models.Document, error)
	Bookings(ctx context.Context, match bson.D) ([]models.Document, error)
	Stop(ctx context.Context) error
}

type WriteOpener interface {
	OpenWrite(ctx context.Context) (WriteSession, error)
}

type ReadOpener interface {
	OpenRead(ctx context.Context) (ReadSession, error)
}

// WithWriteSession opens a write session, runs fn and closes the session on
// every path. A close failure is reported only when fn itself failed.
func WithWriteSession(ctx context.Context, opener WriteOpener, fn func(WriteSession) error) (err error) {
	s, err := opener.OpenWrite(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(context.WithoutCancel(ctx)); cerr != nil && err != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}

// WithReadSession is WithWriteSession for query-engine sessions.
func WithReadSession(ctx context.Context, opener ReadOpener, fn func(ReadSession) error) (err error) {
	s, err := opener.OpenRead(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Stop(context.WithoutCancel(ctx)); cerr != nil && err != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}
