package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes each signal as a structured log line.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyFundsLow(ctx context.Context, email string) {
	n.logger.Info("funds low", zap.String("event", string(EventFundsLow)), zap.String("email", email))
}

func (n *LogNotifier) NotifyApproachingPayInLimit(ctx context.Context, email string) {
	n.logger.Info("approaching pay in limit", zap.String("event", string(EventApproachingPayInLimit)), zap.String("email", email))
}
