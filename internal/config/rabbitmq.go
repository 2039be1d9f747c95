package config

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ returns nil without error when no broker is configured.
func NewRabbitMQ(cfg *Config) (*amqp.Connection, error) {
	if cfg.RabbitMQURL == "" {
		return nil, nil
	}
	return amqp.Dial(cfg.RabbitMQURL)
}
