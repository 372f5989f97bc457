package repository

import (
	"context"
	"fmt"

	"github.com/Eursukkul/flight-booking-service/config"
	"github.com/Eursukkul/flight-booking-service/internal/models"
	"github.com/Eursukkul/flight-booking-service/pkg/database"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOpener opens a fresh client per session. Nothing is pooled across
// sessions.
type MongoOpener struct {
	cfg config.MongoDBConfig
	log *zerolog.Logger
}

func NewMongoOpener(cfg config.MongoDBConfig, log *zerolog.Logger) *MongoOpener {
	return &MongoOpener{cfg: cfg, log: log}
}

func (o *MongoOpener) OpenWrite(ctx context.Context) (WriteSession, error) {
	client, err := database.NewMongoClient(ctx, o.cfg.URI, o.cfg.DriverHostName)
	if err != nil {
		return nil, err
	}

	db := client.Database(o.cfg.DB)
	return &mongoWriteSession{
		client:   client,
		log:      o.log,
		bookings: NewBookingRepository(db.Collection(o.cfg.Booking)),
		flights:  NewFlightRepository(db.Collection(o.cfg.Flight)),
	}, nil
}

func (o *MongoOpener) OpenRead(ctx context.Context) (ReadSession, error) {
	client, err := database.NewQueryClient(ctx, database.QueryOptions{
		URI:        o.cfg.QueryURI(),
		DriverHost: o.cfg.DriverHostName,
	})
	if err != nil {
		return nil, err
	}

	db := client.Database(o.cfg.DB)
	return &mongoReadSession{
		client:   client,
		log:      o.log,
		flights:  db.Collection(o.cfg.Flight),
		bookings: db.Collection(o.cfg.Booking),
	}, nil
}

type mongoWriteSession struct {
	client   *mongo.Client
	log      *zerolog.Logger
	bookings BookingRepository
	flights  FlightRepository
}

func (s *mongoWriteSession) Bookings() BookingRepository { return s.bookings }
func (s *mongoWriteSession) Flights() FlightRepository   { return s.flights }

func (s *mongoWriteSession) Close(ctx context.Context) error {
	return disconnect(ctx, s.client, s.log, "write")
}

type mongoReadSession struct {
	client   *mongo.Client
	log      *zerolog.Logger
	flights  *mongo.Collection
	bookings *mongo.Collection
}

func (s *mongoReadSession) Flights(ctx context.Context, match bson.D) ([]models.Document, error) {
	return load(ctx, s.flights, match)
}

func (s *mongoReadSession) Bookings(ctx context.Context, match bson.D) ([]models.Document, error) {
	return load(ctx, s.bookings, match)
}

func (s *mongoReadSession) Stop(ctx context.Context) error {
	return disconnect(ctx, s.client, s.log, "read")
}

func load(ctx context.Context, coll *mongo.Collection, match bson.D) ([]models.Document, error) {
	if match == nil {
		match = bson.D{}
	}
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}

	cur, err := coll.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, classify(fmt.Sprintf("load %s", coll.Name()), err)
	}
	defer cur.Close(context.WithoutCancel(ctx))

	docs := make([]models.Document, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
		}
		docs = append(docs, models.Document(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, classify(fmt.Sprintf("load %s", coll.Name()), err)
	}
	return docs, nil
}

func disconnect(ctx context.Context, client *mongo.Client, log *zerolog.Logger, kind string) error {
	if err := client.Disconnect(ctx); err != nil {
		if log != nil {
			log.Warn().Err(err).Str("session", kind).Msg("failed to disconnect mongo client")
		}
		return fmt.Errorf("disconnect %s session: %w", kind, err)
	}
	return nil
}
