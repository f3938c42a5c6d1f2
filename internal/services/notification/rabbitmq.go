package notification

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher is the publishing half of an AMQP channel.
type AMQPPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// RabbitMQNotifier publishes events to a topic exchange, routed by
// "account.<event type>".
type RabbitMQNotifier struct {
	publisher AMQPPublisher
	exchange  string
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

func NewRabbitMQNotifier(publisher AMQPPublisher, exchange string, logger *zap.Logger) *RabbitMQNotifier {
	return &RabbitMQNotifier{
		publisher: publisher,
		exchange:  exchange,
		logger:    logger,
		timeout:   defaultPublishTimeout,
		now:       time.Now,
	}
}

func (n *RabbitMQNotifier) NotifyFundsLow(ctx context.Context, email string) {
	n.publish(ctx, newEvent(EventFundsLow, email, n.now))
}

func (n *RabbitMQNotifier) NotifyApproachingPayInLimit(ctx context.Context, email string) {
	n.publish(ctx, newEvent(EventApproachingPayInLimit, email, n.now))
}

func (n *RabbitMQNotifier) publish(ctx context.Context, event Event) {
	body, err := event.encode()
	if err != nil {
		n.logger.Error("failed to encode notification", zap.String("event", string(event.Type)), zap.Error(err))
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err = n.publisher.PublishWithContext(publishCtx, n.exchange, event.routingKey(), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		n.logger.Error("failed to publish notification",
			zap.String("exchange", n.exchange),
			zap.String("routing_key", event.routingKey()),
			zap.Error(err),
		)
		return
	}
	n.logger.Debug("notification published",
		zap.String("exchange", n.exchange),
		zap.String("routing_key", event.routingKey()),
	)
}

// RabbitMQConnection owns the AMQP connection and channel behind a
// RabbitMQNotifier.
type RabbitMQConnection struct {
	conn    *amqp091.Connection
	Channel *amqp091.Channel
}

// DialRabbitMQ connects to the broker and declares the durable topic exchange.
func DialRabbitMQ(amqpURL, exchange string) (*RabbitMQConnection, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.Dial(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQConnection{conn: conn, Channel: channel}, nil
}

func (c *RabbitMQConnection) Close() error {
	var errs []error
	if c.Channel != nil {
		errs = append(errs, c.Channel.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}

// sanitizeAMQPURL strips stray quotes and whitespace left by .env files.
func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("invalid AMQP URL: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
