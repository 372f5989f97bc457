package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/flight-booking-service/config"
	"github.com/Eursukkul/flight-booking-service/internal/consumer"
	"github.com/Eursukkul/flight-booking-service/internal/handler"
	"github.com/Eursukkul/flight-booking-service/internal/logging"
	"github.com/Eursukkul/flight-booking-service/internal/repository"
	"github.com/Eursukkul/flight-booking-service/internal/server"
	"github.com/Eursukkul/flight-booking-service/internal/service"
	"github.com/Eursukkul/flight-booking-service/pkg/rabbitmq"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Logging, cfg.Env, server.ServiceName)

	// Sessions are opened per request; nothing connects at start-up.
	store := repository.NewMongoOpener(cfg.MongoDB, log)

	var (
		publisher    service.EventPublisher
		mqConsumer   *rabbitmq.Consumer
		consumerDone <-chan struct{}
	)
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect publisher to RabbitMQ")
		}
		defer pub.Close()
		publisher = pub

		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitMQ.URL, service.CompensateRoutingKey, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect consumer to RabbitMQ")
		}
		msgs, err := mqConsumer.Consume()
		if err != nil {
			mqConsumer.Close()
			log.Fatal().Err(err).Msg("failed to start consuming")
		}

		consumerDone = consumer.NewCompensationConsumer(store, log).Start(msgs)
	} else {
		log.Warn().Msg("rabbitmq.url is empty; booking events and deferred compensations are disabled")
	}

	flightSvc := service.NewFlightService(store)
	bookingSvc := service.NewBookingService(store, store, publisher, log)

	e := server.New(cfg, log, handler.NewBookingHandler(flightSvc, bookingSvc))

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      e,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info().Str("address", cfg.HTTP.Address).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if mqConsumer != nil {
		mqConsumer.Close()
		select {
		case <-consumerDone:
		case <-ctx.Done():
			log.Warn().Msg("compensation consumer did not stop in time")
		}
	}
}
