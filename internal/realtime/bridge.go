package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DefaultChannel = "realtime:events"

type envelope struct {
	UserID  uuid.UUID `json:"user_id"`
	Message Message   `json:"message"`
}

// RedisBridge fans messages out through redis pub/sub so a user connected
// to any API instance receives them.
type RedisBridge struct {
	client  *redis.Client
	hub     *Hub
	channel string
	logger  zerolog.Logger
}

func NewRedisBridge(client *redis.Client, hub *Hub, logger zerolog.Logger) *RedisBridge {
	return &RedisBridge{client: client, hub: hub, channel: DefaultChannel, logger: logger}
}

func (b *RedisBridge) Publish(ctx context.Context, userID uuid.UUID, msg Message) error {
	data, err := json.Marshal(envelope{UserID: userID, Message: msg})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, data).Err()
}

// Run forwards every bridged message to the local hub until ctx is done.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	b.logger.Info().Str("channel", b.channel).Msg("realtime bridge listening")

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				b.logger.Warn().Err(err).Msg("discarding malformed realtime payload")
				continue
			}
			_ = b.hub.Publish(ctx, env.UserID, env.Message)
		}
	}
}
