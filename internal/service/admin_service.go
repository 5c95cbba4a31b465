package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mobilewash/internal/domain"
	"mobilewash/internal/export"
	"mobilewash/internal/metrics"
	"mobilewash/internal/models"
	"mobilewash/internal/store"

	"github.com/rs/zerolog"
)

// AdminService is the triage surface over the store: filter, search,
// aggregate, transition, delete, export.
type AdminService struct {
	store       domain.Store
	exportsPath string
	logger      *zerolog.Logger
}

func NewAdminService(st domain.Store, exportsPath string, logger *zerolog.Logger) *AdminService {
	return &AdminService{
		store:       st,
		exportsPath: exportsPath,
		logger:      logger,
	}
}

// Filter narrows the booking list. Status is "all", "", or one of the
// enumerated statuses; Search matches name/email case-insensitively and
// phone as a raw substring; a non-zero Date keeps only bookings on that
// calendar day.
type Filter struct {
	Status string
	Search string
	Date   time.Time
}

// Bookings returns the filtered list in insertion order.
func (s *AdminService) Bookings(ctx context.Context, filter Filter) ([]*models.Booking, error) {
	var status models.Status
	if filter.Status != "" && filter.Status != "all" {
		parsed, err := models.ParseStatus(filter.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStatusFilter, filter.Status)
		}
		status = parsed
	}

	var all []*models.Booking
	var err error
	if filter.Date.IsZero() {
		all, err = s.store.ListBookings(ctx)
	} else {
		all, err = s.store.GetBookingsByDate(ctx, filter.Date)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*models.Booking, 0, len(all))
	for _, b := range all {
		if status != "" && b.Status != status {
			continue
		}
		if !matchesSearch(b, filter.Search) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func matchesSearch(b *models.Booking, term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.CustomerName), lower) ||
		strings.Contains(strings.ToLower(b.CustomerEmail), lower) ||
		strings.Contains(b.CustomerPhone, term)
}

// Stats aggregates per-status counts plus completed revenue.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`

	// Revenue sums the embedded package price of completed bookings only.
	Revenue int `json:"revenue"`
}

func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	all, err := s.store.ListBookings(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(all)}
	for _, b := range all {
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusConfirmed:
			stats.Confirmed++
		case models.StatusCompleted:
			stats.Completed++
			stats.Revenue += b.ServicePackage.Price
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

// Transition moves a booking to a new status. The state machine is enforced
// here, not in the store: pending -> confirmed/cancelled, confirmed ->
// completed, terminal states frozen.
func (s *AdminService) Transition(ctx context.Context, id string, to models.Status) error {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	if !models.CanTransition(booking.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	if err := s.store.UpdateBooking(ctx, id, models.BookingUpdate{Status: &to}); err != nil {
		return err
	}

	metrics.IncStatusTransition(string(to))
	s.logger.Info().
		Str("booking_id", id).
		Str("from", string(booking.Status)).
		Str("to", string(to)).
		Msg("booking status changed")
	return nil
}

// UpdateBooking applies a partial field edit. A missing id is a benign no-op.
func (s *AdminService) UpdateBooking(ctx context.Context, id string, update models.BookingUpdate) error {
	err := s.store.UpdateBooking(ctx, id, update)
	if errors.Is(err, store.ErrBookingNotFound) {
		s.logger.Debug().Str("booking_id", id).Msg("update of unknown booking ignored")
		return nil
	}
	return err
}

// Delete removes a booking. Deleting an unknown or already-deleted id is a
// benign no-op.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteBooking(ctx, id)
	if errors.Is(err, store.ErrBookingNotFound) {
		s.logger.Debug().Str("booking_id", id).Msg("delete of unknown booking ignored")
		return nil
	}
	if err != nil {
		return err
	}

	metrics.IncBookingDeleted()
	return nil
}

// Export writes the current booking list to an Excel file and returns its path.
func (s *AdminService) Export(ctx context.Context) (string, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return "", err
	}

	path, err := export.Bookings(s.exportsPath, bookings)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("file_path", path).Int("bookings", len(bookings)).Msg("Excel file created")
	return path, nil
}
