package validation

import (
	"regexp"
	"strings"
)

// Result maps field names to human-readable error messages. Fields are
// validated independently; one bad field never masks another.
type Result struct {
	Errors map[string]string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) add(field, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[field] = message
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BookingForm is the contact-info step of the booking wizard.
type BookingForm struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// ValidateBookingForm checks the contact-info constraints: name at least 2
// characters, a plausible email, phone at least 10 characters, address at
// least 10 characters. Notes are optional.
func ValidateBookingForm(f BookingForm) Result {
	var r Result

	if len(strings.TrimSpace(f.CustomerName)) < 2 {
		r.add("customer_name", "Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.CustomerEmail)) {
		r.add("customer_email", "Please enter a valid email")
	}
	if len(strings.TrimSpace(f.CustomerPhone)) < 10 {
		r.add("customer_phone", "Please enter a valid phone number")
	}
	if len(strings.TrimSpace(f.Address)) < 10 {
		r.add("address", "Please enter a complete address")
	}

	return r
}

// ContactForm is the standalone contact page form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ValidateContactForm mirrors the booking-form rules, with a message body of
// at least 10 characters instead of an address.
func ValidateContactForm(f ContactForm) Result {
	var r Result

	if len(strings.TrimSpace(f.Name)) < 2 {
		r.add("name", "Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		r.add("email", "Please enter a valid email")
	}
	if len(strings.TrimSpace(f.Phone)) < 10 {
		r.add("phone", "Please enter a valid phone number")
	}
	if len(strings.TrimSpace(f.Message)) < 10 {
		r.add("message", "Message must be at least 10 characters")
	}

	return r
}
