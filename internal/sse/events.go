// Package sse implements the storefront's notification channel and its
// Server-Sent Events face.
package sse

import "time"

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventCartChanged signals that a cart was mutated. It carries no diff;
	// subscribers re-read the cart.
	EventCartChanged EventType = "cart.changed"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Type      EventType `json:"type"`

	// Scope is the storage key of the cart the event concerns. Subscribers
	// bound to a different cart key do not receive it. Empty means everyone.
	Scope string `json:"-"`
}

// NewCartChangedEvent creates a payload-free cart change signal for the cart
// stored under cartKey.
func NewCartChangedEvent(cartKey string) Event {
	return Event{
		Type:      EventCartChanged,
		Timestamp: time.Now(),
		Scope:     cartKey,
	}
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"serverTime"`
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}
