package messaging

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/sancruz-dev/dotnet-waterwise/config"
)

const (
	alertsQueue     = "waterwise.alerts"
	sensorDataQueue = "waterwise.sensor.data"
)

// Service publishes readings and alerts to a RabbitMQ topic exchange.
// Publishing is best-effort: when the broker is disabled or the connection
// failed at startup, every publish is a logged no-op. The enabled flag is
// fixed at construction and never mutated afterwards, so concurrent
// publishes only ever read it.
type Service struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	logger   *zap.Logger
	exchange string
	enabled  bool
}

// NewService connects to RabbitMQ and declares the exchange and queues.
// A failed connection does not return an error: the service comes up
// disabled, because ingestion must never depend on messaging being up.
func NewService(cfg config.RabbitMQConfig, logger *zap.Logger) *Service {
	s := &Service{
		logger:   logger,
		exchange: cfg.Exchange,
	}

	if !cfg.Enabled {
		logger.Warn("rabbitmq disabled by configuration")
		return s
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Warn("rabbitmq connection failed, messaging disabled", zap.Error(err))
		return s
	}

	channel, err := conn.Channel()
	if err != nil {
		logger.Warn("rabbitmq channel failed, messaging disabled", zap.Error(err))
		conn.Close()
		return s
	}

	s.conn = conn
	s.channel = channel

	if err := s.setupExchangeAndQueues(); err != nil {
		logger.Warn("rabbitmq topology setup failed, messaging disabled", zap.Error(err))
		channel.Close()
		conn.Close()
		s.conn = nil
		s.channel = nil
		return s
	}

	s.enabled = true
	logger.Info("rabbitmq connected", zap.String("exchange", cfg.Exchange))
	return s
}

// Enabled reports whether the broker connection is live.
func (s *Service) Enabled() bool {
	return s.enabled
}

func (s *Service) setupExchangeAndQueues() error {
	if err := s.channel.ExchangeDeclare(s.exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	for queue, bindingKey := range map[string]string{
		alertsQueue:     "alerts.*",
		sensorDataQueue: "sensor.data.*",
	} {
		if _, err := s.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return err
		}
		if err := s.channel.QueueBind(queue, bindingKey, s.exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// PublishReading publishes an accepted reading under the fixed
// sensor-data routing key. Errors are logged and swallowed.
func (s *Service) PublishReading(event ReadingEvent) {
	if !s.enabled {
		s.logger.Debug("rabbitmq unavailable, reading not published",
			zap.Uint("sensorId", event.SensorID))
		return
	}

	if err := s.publish(ReadingRoutingKey, event); err != nil {
		s.logger.Error("failed to publish reading",
			zap.Uint("readingId", event.ReadingID), zap.Error(err))
		return
	}

	s.logger.Debug("reading published", zap.Uint("readingId", event.ReadingID))
}

// PublishAlert publishes an alert under "alerts." + routingSuffix.
// Errors are logged and swallowed.
func (s *Service) PublishAlert(event AlertEvent, routingSuffix string) {
	routingKey := AlertRoutingPrefix + routingSuffix

	if !s.enabled {
		s.logger.Debug("rabbitmq unavailable, alert not published",
			zap.String("routingKey", routingKey))
		return
	}

	if err := s.publish(routingKey, event); err != nil {
		s.logger.Error("failed to publish alert",
			zap.String("routingKey", routingKey), zap.Error(err))
		return
	}

	s.logger.Debug("alert published", zap.String("routingKey", routingKey))
}

func (s *Service) publish(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(context.Background(),
		s.exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

// Close shuts the channel and connection down.
func (s *Service) Close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
	if s.enabled {
		s.logger.Info("rabbitmq connection closed")
	}
}
