package domain

import (
	"context"
	"time"

	"mobilewash/internal/models"
)

// Store is the single owner of booking and catalog state. All reads return
// copies; all mutations flow through these operations.
type Store interface {
	AddBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, update models.BookingUpdate) error
	DeleteBooking(ctx context.Context, id string) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	GetBookingsByDate(ctx context.Context, date time.Time) ([]*models.Booking, error)
	Packages() []models.ServicePackage
	PackageByID(id string) (*models.ServicePackage, error)
}

// SessionRepository keeps the transient booking-wizard state.
type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*models.BookingSession, error)
	SetSession(ctx context.Context, session *models.BookingSession) error
	ClearSession(ctx context.Context, id string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
