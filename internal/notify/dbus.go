//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	appName = "lrcsync"

	notifyService = "org.freedesktop.Notifications"
	notifyPath    = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod  = notifyService + ".Notify"
	closeMethod   = notifyService + ".CloseNotification"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus notification server. Without a session
// bus it returns a Notifier that posts nothing and a nil error, so save
// reports are silently dropped.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return silent{}, nil //nolint:nilerr // no session bus means no notifications
	}
	return &busNotifier{obj: conn.Object(notifyService, notifyPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}

	// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
	var id uint32
	err := b.obj.Call(notifyMethod, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body, []string{}, hints, n.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(closeMethod, 0, id).Err
}
