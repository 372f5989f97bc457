package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrConnection marks a failure to reach the document store or query engine.
var ErrConnection = errors.New("database connection failed")

// QueryOptions configures a query-engine client.
type QueryOptions struct {
	URI        string
	DriverHost string
}

// NewMongoClient opens a direct client to the document store and verifies it
// with a ping. The caller must Disconnect it.
func NewMongoClient(ctx context.Context, uri, appName string) (*mongo.Client, error) {
	opts := clientOptions(uri, appName)
	return connect(ctx, opts, readpref.Primary())
}

// NewQueryClient opens a client for bulk reads. Reads prefer secondaries so
// analytic scans stay off the primary.
func NewQueryClient(ctx context.Context, q QueryOptions) (*mongo.Client, error) {
	opts := clientOptions(q.URI, q.DriverHost).
		SetReadPreference(readpref.SecondaryPreferred())
	return connect(ctx, opts, readpref.SecondaryPreferred())
}

func clientOptions(uri, appName string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if appName != "" {
		opts.SetAppName(appName)
	}
	return opts
}

func connect(ctx context.Context, opts *options.ClientOptions, rp *readpref.ReadPref) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrConnection, err)
	}

	if err := client.Ping(ctx, rp); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("%w: ping: %v", ErrConnection, err)
	}

	return client, nil
}
