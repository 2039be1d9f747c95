package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error
}

var errNacked = errors.New("broker did not confirm the message")

// session is one channel in confirm mode with the target queue declared.
type session interface {
	publish(ctx context.Context, queue string, msg amqp.Publishing) error
	close()
}

type dialFunc func() (session, error)

type amqpSession struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	closes bool
}

func openSession(conn *amqp.Connection, queue string, ownsConn bool) (session, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("confirm mode: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	return &amqpSession{conn: conn, ch: ch, closes: ownsConn}, nil
}

func (s *amqpSession) publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	confirm, err := s.ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return err
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errNacked
	}
	return nil
}

func (s *amqpSession) close() {
	_ = s.ch.Close()
	if s.closes {
		_ = s.conn.Close()
	}
}

// AMQPPublisher publishes persistent JSON messages to the default exchange
// and waits for the broker to confirm each one. A failed publish drops the
// session and is retried once on a freshly dialed connection.
type AMQPPublisher struct {
	mu     sync.Mutex
	dial   dialFunc
	sess   session
	queue  string
	logger zerolog.Logger
}

// NewAMQPPublisher starts on conn and redials url after the broker goes away.
func NewAMQPPublisher(conn *amqp.Connection, url, queue string, logger zerolog.Logger) *AMQPPublisher {
	if queue == "" {
		queue = BookingConfirmedQueue
	}
	initial := conn
	dial := func() (session, error) {
		if c := initial; c != nil && !c.IsClosed() {
			initial = nil
			return openSession(c, queue, false)
		}
		initial = nil
		c, err := amqp.Dial(url)
		if err != nil {
			return nil, fmt.Errorf("dial broker: %w", err)
		}
		sess, err := openSession(c, queue, true)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		return sess, nil
	}
	return newAMQPPublisher(dial, queue, logger)
}

func newAMQPPublisher(dial dialFunc, queue string, logger zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{dial: dial, queue: queue, logger: logger}
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for attempt := 0; ; attempt++ {
		if p.sess == nil {
			if p.sess, err = p.dial(); err != nil {
				return err
			}
		}

		err = p.sess.publish(ctx, p.queue, msg)
		if err == nil {
			return nil
		}

		p.sess.close()
		p.sess = nil
		if attempt > 0 || ctx.Err() != nil {
			return fmt.Errorf("publish %s: %w", p.queue, err)
		}
		p.logger.Warn().Err(err).Msg("publish failed, reconnecting to broker")
	}
}

// Close releases the current session.
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess != nil {
		p.sess.close()
		p.sess = nil
	}
}

// DirectPublisher hands events to a Handler in a goroutine. It stands in
// for the broker when RABBITMQ_URL is not configured.
type DirectPublisher struct {
	handler Handler
	logger  zerolog.Logger
}

func NewDirectPublisher(handler Handler, logger zerolog.Logger) *DirectPublisher {
	return &DirectPublisher{handler: handler, logger: logger}
}

func (p *DirectPublisher) PublishBookingConfirmed(_ context.Context, ev BookingConfirmedEvent) error {
	go func() {
		if err := p.handler.HandleBookingConfirmed(ev); err != nil {
			p.logger.Error().Err(err).Str("confirmed_event_id", ev.Event.ID.String()).Msg("booking confirmed handler failed")
		}
	}()
	return nil
}
