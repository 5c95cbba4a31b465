package events

import (
	"encoding/json"
	"sync"
	"time"

	"mobilewash/internal/models"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingUpdated   = "booking_updated"
	EventBookingDeleted   = "booking_deleted"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
)

// BookingEventPayload describes the minimal booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID    string        `json:"booking_id"`
	CustomerName string        `json:"customer_name"`
	PackageID    string        `json:"package_id"`
	PackageName  string        `json:"package_name"`
	Price        int           `json:"price"`
	Status       models.Status `json:"status"`
	Date         time.Time     `json:"date"`
	TimeSlot     string        `json:"time_slot"`
	ChangedBy    string        `json:"changed_by,omitempty"`
}

// NewBookingPayload builds a payload from a booking snapshot.
func NewBookingPayload(b *models.Booking, changedBy string) BookingEventPayload {
	return BookingEventPayload{
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		PackageID:    b.ServicePackage.ID,
		PackageName:  b.ServicePackage.Name,
		Price:        b.ServicePackage.Price,
		Status:       b.Status,
		Date:         b.Date,
		TimeSlot:     b.TimeSlot,
		ChangedBy:    changedBy,
	}
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events. Dispatch is synchronous:
// every subscriber sees the event before the publishing mutation returns.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
