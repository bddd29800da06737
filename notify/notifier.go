// Package notify provides the user-notification capability injected into
// the editor and reconciler. Implementations decide how messages surface;
// the core never touches a UI toast layer directly.
package notify

import "go.uber.org/zap"

// Notifier surfaces non-blocking success and error messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success logs the message at info level.
func (n *LogNotifier) Success(msg string) {
	n.logger.Infow("notification", "kind", "success", "message", msg)
}

// Error logs the message at warn level. Notification failures are terminal
// at the UI boundary and never fatal to the process.
func (n *LogNotifier) Error(msg string) {
	n.logger.Warnw("notification", "kind", "error", "message", msg)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Success implements Notifier.
func (NopNotifier) Success(string) {}

// Error implements Notifier.
func (NopNotifier) Error(string) {}
