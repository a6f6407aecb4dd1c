// Package events publishes channel action lifecycle events.
package events

import (
	"encoding/json"
	"time"
)

// EventCompleted is sent when a channel retires an action.
const EventCompleted = "COMPLETED"

// Publisher publishes channel events.
type Publisher interface {
	// Publish sends an event. Errors are reported to the caller and never fatal.
	Publish(event Event) error

	Close() error
}

// Event describes something that happened on a channel.
type Event struct {
	Timestamp time.Time
	Type      string
	Channel   string
	Universe  int
	Address   int

	// Native DMX value of the channel when the event happened
	Value int

	// Human readable description of the action involved
	Action string
}

// Payload is the JSON structure sent to the broker.
type Payload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Channel   string `json:"channel"`
	Universe  int    `json:"universe"`
	Address   int    `json:"address"`
	Value     int    `json:"value"`
	Action    string `json:"action,omitempty"`
}

// FormatPayload creates the JSON payload for an event.
func FormatPayload(event Event) ([]byte, error) {
	return json.Marshal(Payload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		Event:     event.Type,
		Channel:   event.Channel,
		Universe:  event.Universe,
		Address:   event.Address,
		Value:     event.Value,
		Action:    event.Action,
	})
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) error { return nil }

func (NopPublisher) Close() error { return nil }
