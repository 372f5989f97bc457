package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"github.com/Eursukkul/flight-booking-service/internal/repository"
	"github.com/Eursukkul/flight-booking-service/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const applyTimeout = 30 * time.Second

// CompensationConsumer re-applies saga compensations that could not be
// applied while serving the request.
type CompensationConsumer struct {
	writes repository.WriteOpener
	log    *zerolog.Logger
}

func NewCompensationConsumer(writes repository.WriteOpener, log *zerolog.Logger) *CompensationConsumer {
	return &CompensationConsumer{writes: writes, log: log}
}

// Start drains msgs in a goroutine until the channel is closed. The returned
// channel is closed once the last message has been handled.
func (cc *CompensationConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		cc.log.Info().Msg("compensation channel closed, stopping consumer")
	}()
	return done
}

func (cc *CompensationConsumer) handleMessage(msg amqp.Delivery) {
	var c models.Compensation
	if err := json.Unmarshal(msg.Body, &c); err != nil {
		cc.log.Error().Err(err).Msg("dropping malformed compensation")
		_ = msg.Nack(false, false)
		return
	}

	log := cc.log.With().
		Str("compensation", string(c.Kind)).
		Str("booking_id", c.BookingID).
		Str("flight_code", c.FlightCode).
		Logger()

	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	err := repository.WithWriteSession(ctx, cc.writes, func(ws repository.WriteSession) error {
		return service.ApplyCompensation(ctx, ws, c)
	})
	switch {
	case err == nil:
		log.Info().Msg("compensation applied")
		_ = msg.Ack(false)
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrMalformedInput):
		log.Error().Err(err).Msg("dropping invalid compensation")
		_ = msg.Nack(false, false)
	default:
		log.Warn().Err(err).Msg("compensation failed, requeueing")
		_ = msg.Nack(false, true)
	}
}
