// Package realtime pushes per-user events (counters, notifications, session
// closure) to connected WebSocket clients.
package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeCounters      = "counters"
	TypeNotification  = "notification"
	TypeSessionClosed = "session_closed"
)

type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

func NewMessage(typ string, data any) Message {
	return Message{Type: typ, Timestamp: time.Now().UTC(), Data: data}
}

// Publisher delivers msg to every live connection of userID. Messages for
// one user arrive in publish order.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, msg Message) error
}

// Nop drops every message. Used when realtime delivery is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, uuid.UUID, Message) error { return nil }
