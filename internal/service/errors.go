package service

import (
	"errors"

	"github.com/Eursukkul/flight-booking-service/internal/repository"
	"github.com/Eursukkul/flight-booking-service/pkg/database"
)

// Kind classifies a service error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConnection
	KindValidation
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConnection:
		return "connection"
	case KindValidation:
		return "validation"
	case KindMalformedInput:
		return "malformed_input"
	default:
		return "internal"
	}
}

var (
	ErrNotFound       = errors.New("document or index not found")
	ErrValidation     = errors.New("validation failed")
	ErrMalformedInput = errors.New("malformed identifier")
)

// KindOf reports the kind of err. Connection failures win over not-found so
// an unreachable store is never reported as an empty result.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, database.ErrConnection):
		return KindConnection
	case errors.Is(err, ErrNotFound), errors.Is(err, repository.ErrDocumentNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	default:
		return KindInternal
	}
}
