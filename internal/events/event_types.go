package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hr-docs/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventExpiryDigest EventType = "expiry_digest"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DigestSection lists the expired and expiring entries of one category.
type DigestSection struct {
	Category string               `json:"category"`
	Title    string               `json:"title"`
	Expired  []domain.ExpiryEntry `json:"expired"`
	Expiring []domain.ExpiryEntry `json:"expiring"`
}

// ExpiryDigestPayload is the daily summary sent to alert contacts.
type ExpiryDigestPayload struct {
	Date       time.Time       `json:"date"`
	WindowDays int             `json:"window_days"`
	Sections   []DigestSection `json:"sections"`
}

// Total returns how many entries the digest carries.
func (p ExpiryDigestPayload) Total() int {
	total := 0
	for _, s := range p.Sections {
		total += len(s.Expired) + len(s.Expiring)
	}
	return total
}
