package models

import "time"

// Booking is a customer's reservation for one service package at a specific
// date, time slot and address. The chosen package is embedded as a full copy,
// so price and duration stay frozen at booking time even if the catalog
// changes later.
type Booking struct {
	ID             string         `json:"id"`
	CustomerName   string         `json:"customer_name"`
	CustomerEmail  string         `json:"customer_email"`
	CustomerPhone  string         `json:"customer_phone"`
	ServicePackage ServicePackage `json:"service_package"`
	Date           time.Time      `json:"date"`
	TimeSlot       string         `json:"time_slot"`
	Address        string         `json:"address"`
	Status         Status         `json:"status"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// BookingInput carries everything a new booking needs except the fields the
// store assigns itself: ID, CreatedAt and Status.
type BookingInput struct {
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	ServicePackage ServicePackage
	Date           time.Time
	TimeSlot       string
	Address        string
	Notes          string
}

// BookingUpdate is a partial update. Nil fields are left untouched.
// ID and CreatedAt are deliberately not representable here.
type BookingUpdate struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	Date          *time.Time
	TimeSlot      *string
	Address       *string
	Status        *Status
	Notes         *string
}

// SameDay reports whether the booking falls on the given calendar day,
// ignoring the time-of-day component of both values.
func (b *Booking) SameDay(date time.Time) bool {
	y1, m1, d1 := b.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
