package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier writes events to a single topic keyed by recipient
// address, so all signals for one owner land on the same partition.
type KafkaNotifier struct {
	writer  MessageWriter
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewKafkaNotifier(writer MessageWriter, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer:  writer,
		logger:  logger,
		timeout: defaultPublishTimeout,
		now:     time.Now,
	}
}

// NewKafkaWriter builds the writer used in production.
func NewKafkaWriter(brokers []string, topic string, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Debug(fmt.Sprintf(msg, args...)) }),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Error(fmt.Sprintf(msg, args...)) }),
	}
}

func (n *KafkaNotifier) NotifyFundsLow(ctx context.Context, email string) {
	n.produce(ctx, newEvent(EventFundsLow, email, n.now))
}

func (n *KafkaNotifier) NotifyApproachingPayInLimit(ctx context.Context, email string) {
	n.produce(ctx, newEvent(EventApproachingPayInLimit, email, n.now))
}

func (n *KafkaNotifier) produce(ctx context.Context, event Event) {
	value, err := event.encode()
	if err != nil {
		n.logger.Error("failed to encode notification", zap.String("event", string(event.Type)), zap.Error(err))
		return
	}

	produceCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.Email),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := n.writer.WriteMessages(produceCtx, msg); err != nil {
		n.logger.Error("failed to produce notification",
			zap.String("event", string(event.Type)),
			zap.Error(err),
		)
		return
	}
	n.logger.Debug("notification produced", zap.String("event", string(event.Type)))
}
