package calendar

import (
	"fmt"
	"time"

	"mobilewash/internal/models"
)

const (
	// GridDays is the size of the month grid: six full weeks.
	GridDays = 42

	// AvailabilityMonths is how far ahead a day can be booked.
	AvailabilityMonths = 3

	// NavigateMonths is how far ahead the month view can be paged.
	// The booking window extends one month further than the view can
	// reach; the asymmetry comes from the original product and is kept.
	NavigateMonths = 2

	// OpenHour and CloseHour bound the business day; one slot per hour,
	// inclusive of both ends.
	OpenHour  = 9
	CloseHour = 18
)

// Day is one cell of the month grid.
type Day struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"in_month"`

	// Available means today <= Date <= today + AvailabilityMonths,
	// compared by calendar day.
	Available bool `json:"available"`
	Today     bool `json:"today"`
}

// MonthGrid emits exactly GridDays consecutive days covering the displayed
// month, starting from the Sunday on or before the 1st.
func MonthGrid(year int, month time.Month, today time.Time) []Day {
	today = truncate(today)
	limit := today.AddDate(0, AvailabilityMonths, 0)

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]Day, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, Day{
			Date:      d,
			InMonth:   d.Month() == month && d.Year() == year,
			Available: !d.Before(today) && !d.After(limit),
			Today:     d.Equal(today),
		})
	}
	return days
}

// Slots returns the fixed set of hourly time slots. All slots are always
// available; cross-checking against existing bookings is a non-goal.
func Slots() []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, CloseHour-OpenHour+1)
	for hour := OpenHour; hour <= CloseHour; hour++ {
		key := fmt.Sprintf("%d:00", hour)
		slots = append(slots, models.TimeSlot{ID: key, Time: key, Available: true})
	}
	return slots
}

// ValidSlot reports whether key names one of the fixed slots.
func ValidSlot(key string) bool {
	for _, s := range Slots() {
		if s.ID == key {
			return true
		}
	}
	return false
}

// CanNavigatePrev reports whether the view can page back from the displayed
// month. Paging below the current month is not allowed.
func CanNavigatePrev(displayedYear int, displayedMonth time.Month, today time.Time) bool {
	return monthIndex(displayedYear, displayedMonth) > monthIndex(today.Year(), today.Month())
}

// CanNavigateNext reports whether the view can page forward. The view stops
// NavigateMonths past the current month.
func CanNavigateNext(displayedYear int, displayedMonth time.Month, today time.Time) bool {
	return monthIndex(displayedYear, displayedMonth) < monthIndex(today.Year(), today.Month())+NavigateMonths
}

// Navigable reports whether the month view may display the given month:
// the current month through NavigateMonths ahead.
func Navigable(year int, month time.Month, today time.Time) bool {
	idx := monthIndex(year, month)
	current := monthIndex(today.Year(), today.Month())
	return idx >= current && idx <= current+NavigateMonths
}

// Bookable reports whether a date may be selected for a booking:
// within the availability window, by calendar day.
func Bookable(date, today time.Time) bool {
	date = truncate(date)
	today = truncate(today)
	return !date.Before(today) && !date.After(today.AddDate(0, AvailabilityMonths, 0))
}

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
