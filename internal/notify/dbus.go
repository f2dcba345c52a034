package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

// freedesktop notification service coordinates.
const (
	notificationsDestination = "org.freedesktop.Notifications"
	notificationsPath        = dbus.ObjectPath("/org/freedesktop/Notifications")
	methodNotify             = notificationsDestination + ".Notify"
	methodServerInformation  = notificationsDestination + ".GetServerInformation"
)

// criticalUrgency keeps alarm notifications on screen until dismissed.
const criticalUrgency byte = 2

// defaultExpireTimeout lets the notification server pick the timeout.
const defaultExpireTimeout int32 = -1

// errPermissionNotGranted is returned by Show before RequestPermission succeeded.
var errPermissionNotGranted = errors.New("notification permission not granted")

// caller is the subset of dbus.BusObject used by the notifier.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// DBusNotifier shows notifications through org.freedesktop.Notifications.
type DBusNotifier struct {
	// appName is reported to the notification server.
	appName string
	// icon is an icon name or path shown next to the notification.
	icon string

	// mu guards the fields below.
	mu sync.Mutex
	// conn is the session bus connection, nil until RequestPermission.
	conn *dbus.Conn
	// object is the notification service proxy.
	object caller
	// granted is set once the notification server answered.
	granted bool
}

// NewDBusNotifier creates a notifier; nothing is connected until RequestPermission.
func NewDBusNotifier(appName, icon string) *DBusNotifier {
	return &DBusNotifier{
		appName: appName,
		icon:    icon,
	}
}

// RequestPermission connects to the session bus and checks that a
// notification server is running.
func (n *DBusNotifier) RequestPermission(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.granted {
		return nil
	}

	if n.object == nil {
		conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("connect session bus: %w", err)
		}

		n.conn = conn
		n.object = conn.Object(notificationsDestination, notificationsPath)
	}

	var name, vendor, version, specVersion string

	err := n.object.CallWithContext(ctx, methodServerInformation, 0).
		Store(&name, &vendor, &version, &specVersion)
	if err != nil {
		return fmt.Errorf("query notification server: %w", err)
	}

	n.granted = true

	return nil
}

// HasPermission reports whether RequestPermission succeeded.
func (n *DBusNotifier) HasPermission() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.granted
}

// Show displays a notification.
func (n *DBusNotifier) Show(ctx context.Context, title, body string) error {
	n.mu.Lock()
	object, granted := n.object, n.granted
	n.mu.Unlock()

	if !granted {
		return errPermissionNotGranted
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(criticalUrgency),
	}

	var id uint32

	err := object.CallWithContext(ctx, methodNotify, 0,
		n.appName, uint32(0), n.icon, title, body, []string{}, hints, defaultExpireTimeout,
	).Store(&id)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}

// Close releases the bus connection.
func (n *DBusNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.granted = false
	n.object = nil

	if n.conn == nil {
		return nil
	}

	conn := n.conn
	n.conn = nil

	return conn.Close()
}
