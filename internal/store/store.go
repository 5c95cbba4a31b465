package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mobilewash/internal/domain"
	"mobilewash/internal/events"
	"mobilewash/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrPackageNotFound = errors.New("service package not found")
)

// BookingStore is the single source of truth for bookings and the service
// package catalog. Mutations are serialized under one mutex and every
// subscriber is notified synchronously before the next mutation is admitted,
// so observers always see a fully applied snapshot.
type BookingStore struct {
	mu       sync.Mutex
	bookings []*models.Booking
	packages []models.ServicePackage
	byID     map[string]*models.Booking
	bus      domain.EventPublisher
	logger   *zerolog.Logger
}

// New builds a store seeded with the given catalog. A nil bus disables
// event publishing.
func New(packages []models.ServicePackage, bus domain.EventPublisher, logger *zerolog.Logger) *BookingStore {
	if len(packages) == 0 {
		packages = models.DefaultPackages()
	}
	return &BookingStore{
		packages: packages,
		byID:     make(map[string]*models.Booking),
		bus:      bus,
		logger:   logger,
	}
}

// AddBooking assigns a fresh ID and creation time, sets status to pending and
// appends the booking in insertion order. Nothing prevents two bookings for
// the same date/time/package; double-booking protection is out of scope.
func (s *BookingStore) AddBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	booking := &models.Booking{
		ID:             uuid.NewString(),
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
		ServicePackage: input.ServicePackage,
		Date:           input.Date,
		TimeSlot:       input.TimeSlot,
		Address:        input.Address,
		Status:         models.StatusPending,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	s.bookings = append(s.bookings, booking)
	s.byID[booking.ID] = booking
	snapshot := cloneBooking(booking)
	s.publish(events.EventBookingCreated, snapshot, "customer")
	s.mu.Unlock()

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("package_id", booking.ServicePackage.ID).
		Time("date", booking.Date).
		Str("time_slot", booking.TimeSlot).
		Msg("booking created")

	return snapshot, nil
}

// UpdateBooking merges the non-nil fields of update into the booking with the
// given id. ID and CreatedAt are never altered. Returns ErrBookingNotFound
// when the id is absent; callers may treat that as a benign no-op.
func (s *BookingStore) UpdateBooking(ctx context.Context, id string, update models.BookingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("update booking %s: %w", id, ErrBookingNotFound)
	}

	if update.CustomerName != nil {
		booking.CustomerName = *update.CustomerName
	}
	if update.CustomerEmail != nil {
		booking.CustomerEmail = *update.CustomerEmail
	}
	if update.CustomerPhone != nil {
		booking.CustomerPhone = *update.CustomerPhone
	}
	if update.Date != nil {
		booking.Date = *update.Date
	}
	if update.TimeSlot != nil {
		booking.TimeSlot = *update.TimeSlot
	}
	if update.Address != nil {
		booking.Address = *update.Address
	}
	if update.Notes != nil {
		booking.Notes = *update.Notes
	}

	eventType := events.EventBookingUpdated
	if update.Status != nil && *update.Status != booking.Status {
		booking.Status = *update.Status
		switch booking.Status {
		case models.StatusConfirmed:
			eventType = events.EventBookingConfirmed
		case models.StatusCancelled:
			eventType = events.EventBookingCancelled
		case models.StatusCompleted:
			eventType = events.EventBookingCompleted
		}
	}

	s.publish(eventType, cloneBooking(booking), "admin")
	return nil
}

// DeleteBooking removes the booking with the given id. Returns
// ErrBookingNotFound when absent; deleting twice is harmless.
func (s *BookingStore) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("delete booking %s: %w", id, ErrBookingNotFound)
	}

	delete(s.byID, id)
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			break
		}
	}

	s.publish(events.EventBookingDeleted, cloneBooking(booking), "admin")
	return nil
}

// GetBooking returns a copy of the booking with the given id.
func (s *BookingStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("get booking %s: %w", id, ErrBookingNotFound)
	}
	return cloneBooking(booking), nil
}

// ListBookings returns copies of all bookings in insertion order.
func (s *BookingStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, cloneBooking(b))
	}
	return out, nil
}

// GetBookingsByDate returns all bookings whose date falls on the same
// calendar day as date, regardless of time-of-day.
func (s *BookingStore) GetBookingsByDate(ctx context.Context, date time.Time) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Booking
	for _, b := range s.bookings {
		if b.SameDay(date) {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

// Packages returns the static catalog.
func (s *BookingStore) Packages() []models.ServicePackage {
	out := make([]models.ServicePackage, len(s.packages))
	copy(out, s.packages)
	return out
}

// PackageByID looks up a catalog entry.
func (s *BookingStore) PackageByID(id string) (*models.ServicePackage, error) {
	for _, p := range s.packages {
		if p.ID == id {
			pkg := p
			return &pkg, nil
		}
	}
	return nil, fmt.Errorf("package %s: %w", id, ErrPackageNotFound)
}

func (s *BookingStore) publish(eventType string, booking *models.Booking, changedBy string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishJSON(eventType, events.NewBookingPayload(booking, changedBy)); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func cloneBooking(b *models.Booking) *models.Booking {
	out := *b
	if b.ServicePackage.Features != nil {
		out.ServicePackage.Features = append([]string(nil), b.ServicePackage.Features...)
	}
	return &out
}
