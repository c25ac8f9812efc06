package hypridle

import (
	"errors"
	"strings"
	"testing"
)

type fakeBattery struct {
	plugged bool
	percent float64
}

func (f *fakeBattery) Plugged() (bool, error)    { return f.plugged, nil }
func (f *fakeBattery) Percent() (float64, error) { return f.percent, nil }

type fakeApplier struct {
	applied []string
	err     error
}

func (f *fakeApplier) Apply(text string) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, text)
	return nil
}

const monitorSettings = `[general]
low_battery_percentage = 20
[on_ac]
lock_timeout = 600
[on_battery]
lock_timeout = 300
[low_battery]
suspend_timeout = 120
suspend_command = systemctl suspend
`

func TestMonitorFirstTickAlwaysTransitions(t *testing.T) {
	s := loadSettings(t, monitorSettings)
	bat := &fakeBattery{plugged: true}
	applier := &fakeApplier{}

	var notified []string
	m := NewMonitor(s, bat, applier, func(msg string) { notified = append(notified, msg) })

	if err := m.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if len(applier.applied) != 1 {
		t.Fatalf("Apply calls = %d, want 1", len(applier.applied))
	}
	if len(notified) != 1 || notified[0] != "Power state changed to On Ac" {
		t.Errorf("notifications = %v, want one On Ac message", notified)
	}
}

func TestMonitorSameStateIsNoop(t *testing.T) {
	s := loadSettings(t, monitorSettings)
	bat := &fakeBattery{plugged: false, percent: 50}
	applier := &fakeApplier{}

	notifies := 0
	m := NewMonitor(s, bat, applier, func(string) { notifies++ })

	for i := 0; i < 5; i++ {
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick %d failed: %v", i, err)
		}
	}

	if len(applier.applied) != 1 {
		t.Errorf("Apply calls = %d, want 1 across repeated identical states", len(applier.applied))
	}
	if notifies != 1 {
		t.Errorf("notifications = %d, want 1", notifies)
	}
}

func TestMonitorTransitionsExactlyOncePerChange(t *testing.T) {
	s := loadSettings(t, monitorSettings)
	bat := &fakeBattery{plugged: true}
	applier := &fakeApplier{}
	m := NewMonitor(s, bat, applier, nil)

	// AC -> battery -> low battery, with repeats in between.
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	bat.plugged = false
	bat.percent = 60
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	bat.percent = 10
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if len(applier.applied) != 3 {
		t.Fatalf("Apply calls = %d, want 3", len(applier.applied))
	}

	// Each transition rendered its own state's listeners.
	if !strings.Contains(applier.applied[0], "timeout = 600") {
		t.Errorf("first apply should carry the on_ac config:\n%s", applier.applied[0])
	}
	if !strings.Contains(applier.applied[1], "timeout = 300") {
		t.Errorf("second apply should carry the on_battery config:\n%s", applier.applied[1])
	}
	if !strings.Contains(applier.applied[2], "on-timeout = systemctl suspend") {
		t.Errorf("third apply should carry the low_battery config:\n%s", applier.applied[2])
	}
}

func TestMonitorRenderErrorKeepsPreviousState(t *testing.T) {
	s := loadSettings(t, `[general]
[on_battery]
dim_timeout = 30
`)
	bat := &fakeBattery{plugged: false, percent: 80}
	applier := &fakeApplier{}

	notifies := 0
	m := NewMonitor(s, bat, applier, func(string) { notifies++ })

	// Missing dim_command: the transition aborts but the daemon stays up.
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick should swallow render errors, got: %v", err)
	}

	if len(applier.applied) != 0 {
		t.Errorf("Apply calls = %d, want 0 after a failed render", len(applier.applied))
	}
	if notifies != 0 {
		t.Errorf("notifications = %d, want 0 after a failed render", notifies)
	}
}

func TestMonitorApplyErrorPropagates(t *testing.T) {
	s := loadSettings(t, monitorSettings)
	bat := &fakeBattery{plugged: true}
	applier := &fakeApplier{err: errors.New("disk full")}
	m := NewMonitor(s, bat, applier, nil)

	if err := m.Tick(); err == nil {
		t.Error("Tick should propagate apply errors")
	}
}
