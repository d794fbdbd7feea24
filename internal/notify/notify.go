// Package notify posts desktop notifications after a successful export.
//
// Notifications are best-effort: a missing notification service is not
// an error the user should see, so callers log failures and move on.
package notify

// Notifier posts a desktop notification.
type Notifier interface {
	Notify(summary, body string) error
}

// New returns the notifier for the current platform. On platforms
// without an implementation it returns a no-op notifier.
func New() Notifier {
	return newPlatformNotifier()
}

// Noop is a Notifier that does nothing.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(summary, body string) error { return nil }
