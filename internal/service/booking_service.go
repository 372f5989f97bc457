package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"github.com/Eursukkul/flight-booking-service/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompensateRoutingKey carries compensations that could not be applied inline.
const CompensateRoutingKey = "booking.compensate"

const compensationTimeout = 5 * time.Second

// EventPublisher publishes a JSON payload under a routing key.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type BookingService interface {
	GetBooking(ctx context.Context, id string) (models.Document, error)
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
	UpdateContact(ctx context.Context, id string, contact models.Contact) error
	DeleteBooking(ctx context.Context, id string) error
}

type bookingService struct {
	reads     repository.ReadOpener
	writes    repository.WriteOpener
	publisher EventPublisher
	log       *zerolog.Logger
	now       func() time.Time
}

// NewBookingService builds the booking service. publisher may be nil, in which
// case no events or deferred compensations are sent.
func NewBookingService(reads repository.ReadOpener, writes repository.WriteOpener, publisher EventPublisher, log *zerolog.Logger) BookingService {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &bookingService{
		reads:     reads,
		writes:    writes,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// GetBooking returns the booking without its identifier. An id that is not a
// valid ObjectID cannot match any booking and is reported as not found.
func (s *bookingService) GetBooking(ctx context.Context, id string) (models.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("get booking %q: %w", id, ErrNotFound)
	}

	var booking models.Document
	err = repository.WithReadSession(ctx, s.reads, func(rs repository.ReadSession) error {
		docs, err := rs.Bookings(ctx, bson.D{{Key: models.IDKey, Value: oid}})
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("booking %q: %w", id, ErrNotFound)
		}
		booking = docs[0].Without(models.IDKey)
		return nil
	})
	if err != nil {
		return nil, readFailure("get booking", err)
	}
	return booking, nil
}

// CreateBooking inserts the booking and takes one seat from its flight. The
// flight is not checked for existence or remaining seats.
func (s *bookingService) CreateBooking(ctx context.Context, booking *models.Booking) (string, error) {
	var id primitive.ObjectID

	err := repository.WithWriteSession(ctx, s.writes, func(ws repository.WriteSession) error {
		oid, err := ws.Bookings().Create(ctx, booking)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		id = oid

		if err := ws.Flights().AdjustEmptySeats(ctx, booking.FlightCode, -1); err != nil {
			s.compensate(ctx, ws, models.Compensation{
				Kind:       models.CompensateDeleteBooking,
				BookingID:  oid.Hex(),
				FlightCode: booking.FlightCode,
				Reason:     err.Error(),
			})
			return fmt.Errorf("reserve seat on %q: %w", booking.FlightCode, err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}

	s.publish(models.ActionCreated, id.Hex(), booking.FlightCode)
	return id.Hex(), nil
}

// UpdateContact replaces name, phone and email. It succeeds whether or not a
// booking matched.
func (s *bookingService) UpdateContact(ctx context.Context, id string, contact models.Contact) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("update booking %q: %w", id, ErrMalformedInput)
	}

	err = repository.WithWriteSession(ctx, s.writes, func(ws repository.WriteSession) error {
		return ws.Bookings().UpdateContact(ctx, oid, contact)
	})
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	s.publish(models.ActionUpdated, oid.Hex(), "")
	return nil
}

// DeleteBooking returns the booking's seat to its flight, then removes it.
func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("delete booking %q: %w", id, ErrMalformedInput)
	}

	var flightCode string
	err = repository.WithWriteSession(ctx, s.writes, func(ws repository.WriteSession) error {
		booking, err := ws.Bookings().FindByID(ctx, oid)
		if err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return fmt.Errorf("booking %q: %w", id, ErrNotFound)
			}
			return fmt.Errorf("find booking: %w", err)
		}
		flightCode = booking.FlightCode

		if err := ws.Flights().AdjustEmptySeats(ctx, flightCode, 1); err != nil {
			return fmt.Errorf("release seat on %q: %w", flightCode, err)
		}

		if err := ws.Bookings().Delete(ctx, oid); err != nil {
			s.compensate(ctx, ws, models.Compensation{
				Kind:       models.CompensateAdjustSeats,
				BookingID:  oid.Hex(),
				FlightCode: flightCode,
				Delta:      -1,
				Reason:     err.Error(),
			})
			return fmt.Errorf("remove booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.publish(models.ActionDeleted, oid.Hex(), flightCode)
	return nil
}

// compensate undoes the first write of a failed saga. When the inline attempt
// fails too, the compensation is handed to the message broker.
func (s *bookingService) compensate(ctx context.Context, ws repository.WriteSession, c models.Compensation) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	log := s.log.With().
		Str("compensation", string(c.Kind)).
		Str("booking_id", c.BookingID).
		Str("flight_code", c.FlightCode).
		Logger()

	err := ApplyCompensation(cctx, ws, c)
	if err == nil {
		log.Warn().Str("reason", c.Reason).Msg("saga compensated inline")
		return
	}

	if s.publisher == nil {
		log.Error().Err(err).Msg("compensation failed and no broker is configured; manual reconciliation required")
		return
	}
	if perr := s.publisher.Publish(CompensateRoutingKey, c); perr != nil {
		log.Error().Err(err).AnErr("publish_error", perr).Msg("compensation failed and could not be deferred; manual reconciliation required")
		return
	}
	log.Warn().Err(err).Msg("compensation deferred to broker")
}

// ApplyCompensation performs a compensation through an open write session.
func ApplyCompensation(ctx context.Context, ws repository.WriteSession, c models.Compensation) error {
	switch c.Kind {
	case models.CompensateDeleteBooking:
		oid, err := primitive.ObjectIDFromHex(c.BookingID)
		if err != nil {
			return fmt.Errorf("compensation %s: %w", c.Kind, ErrMalformedInput)
		}
		return ws.Bookings().Delete(ctx, oid)
	case models.CompensateAdjustSeats:
		if c.FlightCode == "" || c.Delta == 0 {
			return fmt.Errorf("compensation %s: %w: flight code and delta are required", c.Kind, ErrValidation)
		}
		return ws.Flights().AdjustEmptySeats(ctx, c.FlightCode, c.Delta)
	default:
		return fmt.Errorf("compensation %q: %w: unknown kind", c.Kind, ErrValidation)
	}
}

func (s *bookingService) publish(action models.BookingAction, bookingID, flightCode string) {
	if s.publisher == nil {
		return
	}

	event := models.BookingEvent{
		ID:         uuid.NewString(),
		Action:     action,
		BookingID:  bookingID,
		FlightCode: flightCode,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(string(action), event); err != nil {
		s.log.Warn().Err(err).Str("action", string(action)).Str("booking_id", bookingID).Msg("failed to publish booking event")
	}
}
