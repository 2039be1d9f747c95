package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type delivery struct {
	userID uuid.UUID
	msg    Message
}

// membership is a register or unregister call. Run closes applied once the
// client set reflects it.
type membership struct {
	client  *Client
	applied chan struct{}
}

// Hub tracks live clients per user and fans messages out to them.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	deliver    chan delivery
	register   chan membership
	unregister chan membership
	done       chan struct{}
	mu         sync.RWMutex
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		deliver:    make(chan delivery, 256),
		register:   make(chan membership),
		unregister: make(chan membership),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case m := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[m.client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[m.client.userID] = set
			}
			set[m.client] = struct{}{}
			h.mu.Unlock()
			close(m.applied)
			h.logger.Debug().Str("user_id", m.client.userID.String()).Msg("realtime client connected")

		case m := <-h.unregister:
			h.mu.Lock()
			h.drop(m.client)
			h.mu.Unlock()
			close(m.applied)
			h.logger.Debug().Str("user_id", m.client.userID.String()).Msg("realtime client disconnected")

		case d := <-h.deliver:
			h.mu.Lock()
			for client := range h.clients[d.userID] {
				select {
				case client.send <- d.msg:
				default:
					h.logger.Warn().Str("user_id", d.userID.String()).Msg("realtime client too slow, disconnecting")
					h.drop(client)
				}
			}
			if d.msg.Type == TypeSessionClosed {
				for client := range h.clients[d.userID] {
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for client := range set {
			h.drop(client)
		}
	}
}

// Register returns once the client is visible to Publish and ClientCount.
func (h *Hub) Register(client *Client) {
	m := membership{client: client, applied: make(chan struct{})}
	select {
	case h.register <- m:
		<-m.applied
	case <-h.done:
		close(client.send)
	}
}

// Unregister returns once the client has been removed. Repeated calls are no-ops.
func (h *Hub) Unregister(client *Client) {
	m := membership{client: client, applied: make(chan struct{})}
	select {
	case h.unregister <- m:
		<-m.applied
	case <-h.done:
	}
}

// Publish queues msg for the user's local connections only.
func (h *Hub) Publish(_ context.Context, userID uuid.UUID, msg Message) error {
	select {
	case h.deliver <- delivery{userID: userID, msg: msg}:
	default:
		h.logger.Warn().Str("type", msg.Type).Msg("realtime delivery queue full, message dropped")
	}
	return nil
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
