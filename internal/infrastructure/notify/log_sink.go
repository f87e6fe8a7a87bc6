package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes notifications to the application log. Used when no
// external delivery channel is configured.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("notify")}
}

// Send logs the notification at info level
func (s *LogSink) Send(ctx context.Context, n Notification) error {
	s.logger.Info("notification",
		zap.String("kind", n.Kind),
		zap.String("message", n.Message),
	)
	return nil
}

var _ Sink = (*LogSink)(nil)
