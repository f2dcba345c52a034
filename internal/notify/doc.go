// Package notify delivers fired alarms to the user: a console alert line and
// freedesktop desktop notifications over the D-Bus session bus.
package notify
