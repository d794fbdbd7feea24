//go:build !linux

package notify

func newPlatformNotifier() Notifier {
	return Noop{}
}
