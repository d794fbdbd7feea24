//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyBusName   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"
)

// dbusNotifier talks to the org.freedesktop.Notifications service on
// the session bus.
type dbusNotifier struct{}

func newPlatformNotifier() Notifier {
	return &dbusNotifier{}
}

// Notify implements Notifier. The connection is established per call:
// notifications are rare (one per export) and a held connection would
// have to survive session bus restarts.
func (n *dbusNotifier) Notify(summary, body string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}

	obj := conn.Object(notifyBusName, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyInterface+".Notify", 0,
		"typetrace",               // app_name
		uint32(0),                 // replaces_id
		"",                        // app_icon
		summary,                   // summary
		body,                      // body
		[]string{},                // actions
		map[string]dbus.Variant{}, // hints
		int32(5000),               // expire_timeout ms
	)
	if call.Err != nil {
		return fmt.Errorf("notify call: %w", call.Err)
	}
	return nil
}
