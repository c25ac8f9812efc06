package power

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	upowerName     = "org.freedesktop.UPower"
	upowerPath     = "/org/freedesktop/UPower"
	propsInterface = "org.freedesktop.DBus.Properties"
	propsChanged   = "org.freedesktop.DBus.Properties.PropertiesChanged"
	deviceAdded    = "org.freedesktop.UPower.DeviceAdded"
	deviceRemoved  = "org.freedesktop.UPower.DeviceRemoved"
)

// UPowerWatcher forwards power-supply device events from the system bus.
type UPowerWatcher struct {
	conn     *dbus.Conn
	signals  chan *dbus.Signal
	debounce time.Duration
}

// NewUPowerWatcher connects to the system bus and subscribes to UPower
// device add/remove and property-change signals.
func NewUPowerWatcher(debounce time.Duration) (*UPowerWatcher, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchPathNamespace(dbus.ObjectPath(upowerPath)),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("add properties match: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(upowerName),
		dbus.WithMatchObjectPath(dbus.ObjectPath(upowerPath)),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("add device match: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	return &UPowerWatcher{conn: conn, signals: signals, debounce: debounce}, nil
}

// Watch invokes onEvent for every relevant power-supply signal until the
// context is cancelled. The debounce delay runs before each invocation so
// transient readings during AC plug/unplug settle first.
func (w *UPowerWatcher) Watch(ctx context.Context, onEvent func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-w.signals:
			if !ok {
				return
			}
			if !relevantSignal(sig) {
				continue
			}
			select {
			case <-time.After(w.debounce):
			case <-ctx.Done():
				return
			}
			onEvent()
		}
	}
}

// Close tears down the bus connection.
func (w *UPowerWatcher) Close() error {
	w.conn.RemoveSignal(w.signals)
	return w.conn.Close()
}

func relevantSignal(sig *dbus.Signal) bool {
	switch sig.Name {
	case deviceAdded, deviceRemoved:
		return true
	case propsChanged:
		return strings.HasPrefix(string(sig.Path), upowerPath)
	default:
		return false
	}
}
