package hypridle

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lvim-tech/hyprpower/pkg/config"
	"github.com/lvim-tech/hyprpower/pkg/power"
)

// NotifyFunc delivers a best-effort desktop notification.
type NotifyFunc func(message string)

// Monitor tracks the last observed power state and drives the
// render, write, restart sequence on every transition.
type Monitor struct {
	settings *config.Settings
	battery  power.Battery
	applier  Applier
	notify   NotifyFunc

	mu      sync.Mutex
	last    power.State
	hasLast bool
}

// NewMonitor wires a monitor over the given battery source and applier.
// notify may be nil when notifications are disabled.
func NewMonitor(settings *config.Settings, battery power.Battery, applier Applier, notify NotifyFunc) *Monitor {
	return &Monitor{
		settings: settings,
		battery:  battery,
		applier:  applier,
		notify:   notify,
	}
}

// Tick probes the power state and, when it differs from the last
// observation, rewrites and restarts hypridle. Concurrent triggers serialize
// on the monitor's mutex. The first tick of the process always transitions
// because no previous state exists yet.
//
// A missing-command render error leaves the previous file and process
// untouched and keeps the daemon alive; write and launch errors propagate.
func (m *Monitor) Tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := power.Probe(m.battery, m.settings.General.LowBatteryPercentage)
	if m.hasLast && state == m.last {
		return nil
	}

	logrus.WithField("state", state.String()).Info("power state changed")
	m.last = state
	m.hasLast = true

	text, err := Render(state, m.settings)
	if err != nil {
		var missing *MissingCommandError
		if errors.As(err, &missing) {
			logrus.WithError(err).Error("cannot render hypridle config, keeping previous configuration")
			return nil
		}
		return err
	}

	if err := m.applier.Apply(text); err != nil {
		return err
	}

	if m.notify != nil {
		m.notify("Power state changed to " + state.Title())
	}

	return nil
}
