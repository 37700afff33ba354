package notification

import "go.uber.org/zap"

const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Notifier is fire-and-forget: callers never branch on a delivery result.
// Push/WA delivery is a separate concern plugged in behind this interface.
type Notifier interface {
	Notify(level, message string)
}

type zapNotifier struct {
	logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.L()
	}
	return &zapNotifier{logger: logger.Named("notification")}
}

func (n *zapNotifier) Notify(level, message string) {
	switch level {
	case LevelWarning:
		n.logger.Warn(message)
	case LevelError:
		n.logger.Error(message)
	default:
		n.logger.Info(message)
	}
}

// Nop is used in tests that don't assert on notifications.
type Nop struct{}

func (Nop) Notify(level, message string) {}
