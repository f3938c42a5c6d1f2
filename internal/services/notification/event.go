// Package notification delivers account limit signals to account owners.
//
// Every transport implements models.Notifier and is fire-and-forget:
// delivery failures are logged and never reach the caller.
package notification

import (
	"encoding/json"
	"time"
)

// EventType identifies the signal carried by an Event.
type EventType string

const (
	EventFundsLow              EventType = "funds_low"
	EventApproachingPayInLimit EventType = "approaching_pay_in_limit"
)

const (
	routingKeyPrefix      = "account."
	defaultPublishTimeout = 5 * time.Second
)

// Event is the JSON payload published for every signal.
type Event struct {
	Type       EventType `json:"type"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(eventType EventType, email string, now func() time.Time) Event {
	return Event{
		Type:       eventType,
		Email:      email,
		OccurredAt: now().UTC(),
	}
}

func (e Event) routingKey() string {
	return routingKeyPrefix + string(e.Type)
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}
