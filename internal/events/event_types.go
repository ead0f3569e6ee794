package events

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventUserLoggedOut  EventType = "user_logged_out"
	EventProfileUpdated EventType = "profile_updated"
	EventItemCreated    EventType = "item_created"
	EventItemUpdated    EventType = "item_updated"
	EventItemDeleted    EventType = "item_deleted"
)

// Event represents a domain event emitted by services. SubjectID is the id
// of the user or item the event is about.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email  string        `json:"email"`
	Gender domain.Gender `json:"gender"`
}

// SessionPayload accompanies login/logout events.
type SessionPayload struct {
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ItemChangedPayload accompanies catalog mutations.
type ItemChangedPayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
