package service

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteSelection means the wizard was submitted before package,
	// date and time were all chosen. The store is never touched in that case.
	ErrIncompleteSelection = errors.New("please select a service package, date, and time")

	// ErrDateUnavailable means the chosen date is outside the booking window.
	ErrDateUnavailable = errors.New("date is not available for booking")

	// ErrUnknownSlot means the time-slot key is not one of the fixed hourly slots.
	ErrUnknownSlot = errors.New("unknown time slot")

	// ErrInvalidTransition means the requested status change is not allowed
	// by the booking state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownStatusFilter means the admin filter named a status that does
	// not exist (and is not "all").
	ErrUnknownStatusFilter = errors.New("unknown status filter")
)

// ValidationError carries per-field messages from the form validators.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}
