// Package format holds pure display helpers shared by the API layer and the
// Excel export.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price renders a whole-dollar amount as a display string.
func Price(dollars int) string {
	return fmt.Sprintf("$%d", dollars)
}

// Date renders a calendar date for display.
func Date(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// Slot renders an "H:00" time-slot key as a 12-hour label, e.g. "9:00" ->
// "9:00 AM", "18:00" -> "6:00 PM". Unparseable keys are returned as-is.
func Slot(key string) string {
	hourStr, _, ok := strings.Cut(key, ":")
	if !ok {
		return key
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return key
	}

	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

// Duration renders a package duration in minutes.
func Duration(minutes int) string {
	return fmt.Sprintf("%d minutes", minutes)
}
