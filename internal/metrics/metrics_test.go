package metrics

import "testing"

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register() // must not panic

	IncHTTP("/api/v1/packages")
	IncBookingCreated()
	IncBookingDeleted()
	IncStatusTransition("confirmed")
}
