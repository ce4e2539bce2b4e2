package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdminRegistered             EventType = "admin_registered"
	EventAdminDeleted                EventType = "admin_deleted"
	EventTableSessionCreated         EventType = "table_session_created"
	EventTableSessionDeactivated     EventType = "table_session_deactivated"
	EventTableSessionCheckoutChanged EventType = "table_session_checkout_changed"
)

// Event represents a lifecycle event emitted by the authorities.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, subject string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AdminPayload payload.
type AdminPayload struct {
	Name string `json:"name,omitempty"`
}

// TableSessionCreatedPayload payload.
type TableSessionCreatedPayload struct {
	TableID uuid.UUID `json:"table_id"`
	OrderID uuid.UUID `json:"order_id"`
}

// CheckoutChangedPayload payload. A nil CheckoutID means the checkout was detached.
type CheckoutChangedPayload struct {
	CheckoutID *uuid.UUID `json:"checkout_id,omitempty"`
	IsActive   bool       `json:"is_active"`
}
