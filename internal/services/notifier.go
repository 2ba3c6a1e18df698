package services

import (
	"go.uber.org/zap"
)

// Notifier is the fire-and-forget notification sink. Implementations
// must never fail the caller; missing permission silently suppresses
// delivery.
type Notifier interface {
	Notify(title, body string)
}

// LogNotifier is a placeholder for a real push-notification service.
type LogNotifier struct {
	log       *zap.Logger
	permitted bool
}

func NewLogNotifier(log *zap.Logger, permitted bool) *LogNotifier {
	return &LogNotifier{log: log, permitted: permitted}
}

// Notify simulates delivering a notification. In a real application
// this would hand off to the browser push or mobile push gateway.
func (n *LogNotifier) Notify(title, body string) {
	if !n.permitted {
		n.log.Debug("Notification suppressed, no permission", zap.String("title", title))
		return
	}
	n.log.Info("Sending notification",
		zap.String("title", title),
		zap.String("body", body),
	)
}
