package models

// TimeSlot is one bookable hour of the business day. ID doubles as the
// display key, e.g. "9:00".
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
