package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventClassSubmitted  EventType = "class.submitted"
	EventClassApproved   EventType = "class.approved"
	EventClassDenied     EventType = "class.denied"
	EventClassDeleted    EventType = "class.deleted"
	EventPaymentRecorded EventType = "payment.recorded"
	EventUserRoleChanged EventType = "user.role_changed"
	EventUserRegistered  EventType = "user.registered"
)

const (
	eventSource  = "daily-fit-server"
	eventVersion = "1.0"
)

type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewEvent(eventType EventType, data map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers domain events. Publishing is best effort; callers log failures
// rather than failing the request.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
