package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/flight-booking-service/pkg/database"
	"go.mongodb.org/mongo-driver/mongo"
)

// classify wraps driver errors, marking network failures and timeouts as
// connection errors.
func classify(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s: %w: %v", op, database.ErrConnection, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
