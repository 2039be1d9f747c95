package realtime

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"eventoria/internal/domain"
)

// Authenticator resolves an access token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// Snapshotter provides the counters sent right after a client connects.
type Snapshotter interface {
	Counters(ctx context.Context, userID uuid.UUID) (domain.SessionCounters, error)
}

type Gateway struct {
	hub      *Hub
	auth     Authenticator
	snapshot Snapshotter
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewGateway(hub *Hub, auth Authenticator, snapshot Snapshotter, allowedOrigins []string, logger zerolog.Logger) *Gateway {
	return &Gateway{
		hub:      hub,
		auth:     auth,
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// Handler serves /ws?token=<access token> and /health.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.serveWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	userID, err := g.auth.Authenticate(r.Context(), token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(userID, g.hub, conn)
	g.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	counters, err := g.snapshot.Counters(r.Context(), userID)
	if err != nil {
		g.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to load counters snapshot")
		return
	}
	_ = g.hub.Publish(r.Context(), userID, NewMessage(TypeCounters, counters))
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	wildcard := false
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "*" {
			wildcard = true
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		return set[origin]
	}
}
