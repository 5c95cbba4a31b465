package service

import (
	"context"
	"fmt"
	"time"

	"mobilewash/internal/calendar"
	"mobilewash/internal/domain"
	"mobilewash/internal/metrics"
	"mobilewash/internal/models"
	"mobilewash/internal/validation"

	"github.com/rs/zerolog"
)

// BookingFlow drives the four-step booking wizard: package, date, time,
// contact info. Selections live in a session repository and reach the store
// only on a complete, validated submit.
type BookingFlow struct {
	store    domain.Store
	sessions domain.SessionRepository
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingFlow(store domain.Store, sessions domain.SessionRepository, logger *zerolog.Logger) *BookingFlow {
	return &BookingFlow{
		store:    store,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// SelectPackage records the package choice for a session.
func (f *BookingFlow) SelectPackage(ctx context.Context, sessionID, packageID string) (*models.BookingSession, error) {
	if _, err := f.store.PackageByID(packageID); err != nil {
		return nil, err
	}

	session, err := f.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.PackageID = packageID
	return session, f.save(ctx, session)
}

// SelectDate records the date choice. The date must fall inside the booking
// window: today through three months out, by calendar day.
func (f *BookingFlow) SelectDate(ctx context.Context, sessionID string, date time.Time) (*models.BookingSession, error) {
	if !calendar.Bookable(date, f.now()) {
		return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, date.Format("2006-01-02"))
	}

	session, err := f.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Date = date
	return session, f.save(ctx, session)
}

// SelectTime records the time-slot choice.
func (f *BookingFlow) SelectTime(ctx context.Context, sessionID, slot string) (*models.BookingSession, error) {
	if !calendar.ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}

	session, err := f.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.TimeSlot = slot
	return session, f.save(ctx, session)
}

// Submit validates the contact form, checks that all three selections are
// present and commits the booking. The session is cleared on success.
func (f *BookingFlow) Submit(ctx context.Context, sessionID string, form validation.BookingForm) (*models.Booking, error) {
	session, err := f.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || !session.Complete() {
		return nil, ErrIncompleteSelection
	}

	booking, err := f.create(ctx, session.PackageID, session.Date, session.TimeSlot, form)
	if err != nil {
		return nil, err
	}

	if err := f.sessions.ClearSession(ctx, sessionID); err != nil {
		f.logger.Warn().Err(err).Str("session_id", sessionID).Msg("clear session after submit")
	}
	return booking, nil
}

// CreateBookingRequest is the one-shot variant of the wizard: every
// selection plus the contact form in a single call.
type CreateBookingRequest struct {
	PackageID string
	Date      time.Time
	TimeSlot  string
	Form      validation.BookingForm
}

// CreateBooking performs the same guards as the wizard without session state.
func (f *BookingFlow) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if req.PackageID == "" || req.Date.IsZero() || req.TimeSlot == "" {
		return nil, ErrIncompleteSelection
	}
	if !calendar.ValidSlot(req.TimeSlot) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, req.TimeSlot)
	}
	if !calendar.Bookable(req.Date, f.now()) {
		return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, req.Date.Format("2006-01-02"))
	}
	return f.create(ctx, req.PackageID, req.Date, req.TimeSlot, req.Form)
}

func (f *BookingFlow) create(ctx context.Context, packageID string, date time.Time, slot string, form validation.BookingForm) (*models.Booking, error) {
	if result := validation.ValidateBookingForm(form); !result.Valid() {
		return nil, &ValidationError{Fields: result.Errors}
	}

	pkg, err := f.store.PackageByID(packageID)
	if err != nil {
		return nil, err
	}

	booking, err := f.store.AddBooking(ctx, models.BookingInput{
		CustomerName:   form.CustomerName,
		CustomerEmail:  form.CustomerEmail,
		CustomerPhone:  form.CustomerPhone,
		ServicePackage: *pkg,
		Date:           date,
		TimeSlot:       slot,
		Address:        form.Address,
		Notes:          form.Notes,
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	return booking, nil
}

func (f *BookingFlow) loadOrCreate(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := f.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		session = &models.BookingSession{ID: sessionID}
	}
	return session, nil
}

func (f *BookingFlow) save(ctx context.Context, session *models.BookingSession) error {
	session.UpdatedAt = f.now()
	if err := f.sessions.SetSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
