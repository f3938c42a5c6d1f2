package notification

import (
	"fmt"

	"github.com/cgultunca/moneybox-withdrawal/internal/config"
	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"go.uber.org/zap"
)

const (
	DriverLog      = "log"
	DriverRabbitMQ = "rabbitmq"
	DriverKafka    = "kafka"
)

var (
	_ models.Notifier = (*LogNotifier)(nil)
	_ models.Notifier = (*RabbitMQNotifier)(nil)
	_ models.Notifier = (*KafkaNotifier)(nil)
)

// New builds the notifier selected by cfg.Driver. The returned close
// function releases any broker connection and is never nil.
func New(cfg config.NotifierConfig, logger *zap.Logger) (models.Notifier, func() error, error) {
	switch cfg.Driver {
	case "", DriverLog:
		return NewLogNotifier(logger), noopClose, nil

	case DriverRabbitMQ:
		conn, err := DialRabbitMQ(cfg.AMQPURL, cfg.Exchange)
		if err != nil {
			return nil, noopClose, err
		}
		logger.Info("RabbitMQ notifier ready", zap.String("exchange", cfg.Exchange))
		return NewRabbitMQNotifier(conn.Channel, cfg.Exchange, logger), conn.Close, nil

	case DriverKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, noopClose, fmt.Errorf("kafka notifier requires at least one broker")
		}
		writer := NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.Info("Kafka notifier ready", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
		return NewKafkaNotifier(writer, logger), writer.Close, nil

	default:
		return nil, noopClose, fmt.Errorf("unknown notifier driver %q", cfg.Driver)
	}
}

func noopClose() error { return nil }
