package service

import (
	"context"
	"sync"

	"github.com/Eursukkul/flight-booking-service/internal/models"
	"github.com/Eursukkul/flight-booking-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory store implementing both openers ---

type fakeStore struct {
	mu       sync.Mutex
	flights  map[string]models.Document
	bookings map[primitive.ObjectID]models.Booking

	openErr   error
	loadErr   error
	insertFn  func() error
	adjustFn  func(code string, delta int) error
	deleteFn  func() error
	updateErr error

	opened, closed int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		flights:  map[string]models.Document{},
		bookings: map[primitive.ObjectID]models.Booking{},
	}
}

func (f *fakeStore) addFlight(code string, seats int) {
	f.flights[code] = models.Document{"_id": code, "empty_seat": seats, "from": "HAN", "to": "SGN"}
}

func (f *fakeStore) seats(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flights[code]["empty_seat"].(int)
}

func (f *fakeStore) OpenWrite(ctx context.Context) (repository.WriteSession, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	return &fakeWriteSession{store: f}, nil
}

func (f *fakeStore) OpenRead(ctx context.Context) (repository.ReadSession, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	return &fakeReadSession{store: f}, nil
}

type fakeWriteSession struct {
	store *fakeStore
}

func (s *fakeWriteSession) Bookings() repository.BookingRepository { return &fakeBookings{store: s.store} }
func (s *fakeWriteSession) Flights() repository.FlightRepository   { return &fakeFlights{store: s.store} }

func (s *fakeWriteSession) Close(ctx context.Context) error {
	s.store.closed++
	return nil
}

type fakeReadSession struct {
	store *fakeStore
}

func (s *fakeReadSession) Stop(ctx context.Context) error {
	s.store.closed++
	return nil
}

func (s *fakeReadSession) Flights(ctx context.Context, match bson.D) ([]models.Document, error) {
	f := s.store
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Document{}
	for code, doc := range f.flights {
		if len(match) == 0 || match[0].Value == code {
			cp := models.Document{}
			for k, v := range doc {
				cp[k] = v
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s *fakeReadSession) Bookings(ctx context.Context, match bson.D) ([]models.Document, error) {
	f := s.store
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Document{}
	for id, b := range f.bookings {
		if len(match) == 0 || match[0].Value == id {
			out = append(out, models.Document{
				"_id":         id,
				"flight_code": b.FlightCode,
				"name":        b.Name,
				"phone":       b.Phone,
				"email":       b.Email,
			})
		}
	}
	return out, nil
}

type fakeBookings struct{ store *fakeStore }

func (r *fakeBookings) Create(ctx context.Context, b *models.Booking) (primitive.ObjectID, error) {
	if r.store.insertFn != nil {
		if err := r.store.insertFn(); err != nil {
			return primitive.NilObjectID, err
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b.ID = primitive.NewObjectID()
	r.store.bookings[b.ID] = *b
	return b.ID, nil
}

func (r *fakeBookings) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	return &b, nil
}

func (r *fakeBookings) UpdateContact(ctx context.Context, id primitive.ObjectID, c models.Contact) error {
	if r.store.updateErr != nil {
		return r.store.updateErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if b, ok := r.store.bookings[id]; ok {
		b.Name, b.Phone, b.Email = c.Name, c.Phone, c.Email
		r.store.bookings[id] = b
	}
	return nil
}

func (r *fakeBookings) Delete(ctx context.Context, id primitive.ObjectID) error {
	if r.store.deleteFn != nil {
		if err := r.store.deleteFn(); err != nil {
			return err
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.bookings, id)
	return nil
}

type fakeFlights struct{ store *fakeStore }

func (r *fakeFlights) AdjustEmptySeats(ctx context.Context, code string, delta int) error {
	if r.store.adjustFn != nil {
		if err := r.store.adjustFn(code, delta); err != nil {
			return err
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if doc, ok := r.store.flights[code]; ok {
		doc["empty_seat"] = doc["empty_seat"].(int) + delta
	}
	return nil
}

// --- Mock publisher ---

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	mu        sync.Mutex
	messages  []published
	publishFn func(routingKey string) error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	if m.publishFn != nil {
		if err := m.publishFn(routingKey); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, published{key: routingKey, payload: payload})
	return nil
}

func (m *mockPublisher) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	for i, p := range m.messages {
		out[i] = p.key
	}
	return out
}
