package models

import "time"

// BookingSession is the transient selection state of the four-step booking
// wizard. Nothing here touches the store until all three selections are
// present and the contact form validates.
type BookingSession struct {
	ID        string    `json:"id"`
	PackageID string    `json:"package_id,omitempty"`
	Date      time.Time `json:"date,omitempty"`
	TimeSlot  string    `json:"time_slot,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Complete reports whether package, date and time have all been chosen.
func (s *BookingSession) Complete() bool {
	return s.PackageID != "" && !s.Date.IsZero() && s.TimeSlot != ""
}
