package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"eventoria/internal/queue"
	"eventoria/internal/realtime"
)

// RealtimePublisher records every message instead of delivering it.
type RealtimePublisher struct {
	mu   sync.Mutex
	Sent map[uuid.UUID][]realtime.Message
}

func NewRealtimePublisher() *RealtimePublisher {
	return &RealtimePublisher{Sent: make(map[uuid.UUID][]realtime.Message)}
}

func (p *RealtimePublisher) Publish(ctx context.Context, userID uuid.UUID, msg realtime.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent[userID] = append(p.Sent[userID], msg)
	return nil
}

// Types returns the message types delivered to userID, in order.
func (p *RealtimePublisher) Types(userID uuid.UUID) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.Sent[userID]))
	for _, msg := range p.Sent[userID] {
		types = append(types, msg.Type)
	}
	return types
}

type QueuePublisher struct {
	mock.Mock
}

func (m *QueuePublisher) PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
