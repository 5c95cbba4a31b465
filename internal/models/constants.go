package models

const (
	// DefaultSessionTTL is how long a booking wizard session lives.
	DefaultSessionTTL = 30 * 60 // 30 minutes in seconds

	// RateLimitRequests is the request budget per window on public endpoints.
	RateLimitRequests = 20

	// RateLimitWindow is the rate-limit window.
	RateLimitWindow = 60 // 1 minute in seconds
)
