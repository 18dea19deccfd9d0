package analytics

import (
	"time"

	"go.uber.org/zap"
)

// LogSink writes events to the structured log. It is the development-time
// sink wired when no external analytics layer is configured.
type LogSink struct {
	logger   *zap.Logger
	identity *Identity
}

// NewLogSink creates a log-backed sink
func NewLogSink(logger *zap.Logger, identity *Identity) *LogSink {
	return &LogSink{logger: logger, identity: identity}
}

func (s *LogSink) Emit(event string, attrs map[string]any) {
	s.logger.Info("analytics event",
		zap.String("event", event),
		zap.String("device_id", s.identity.DeviceID()),
		zap.Any("attrs", attrs),
	)
}

func (s *LogSink) Reset() {
	s.identity.Rotate()
}

func (s *LogSink) Flush(grace time.Duration) {
	// zap buffers internally; give Sync the grace period budget
	done := make(chan struct{})
	go func() {
		_ = s.logger.Sync()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
	}
}
