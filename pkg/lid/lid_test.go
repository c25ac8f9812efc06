package lid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lvim-tech/hyprpower/pkg/config"
)

func loadSettings(t *testing.T, contents string) *config.Settings {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write settings fixture: %v", err)
	}
	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("load settings fixture: %v", err)
	}
	return s
}

func TestRunNoCommandConfigured(t *testing.T) {
	s := loadSettings(t, "[general]\n")

	if err := Run(s); err != nil {
		t.Errorf("Run without lid commands should be a no-op, got: %v", err)
	}
}

func TestRunExecutesConfiguredCommand(t *testing.T) {
	// The same command for every state keeps the test independent of the
	// host's actual power source.
	s := loadSettings(t, `[general]
[lid_switch]
on_ac_command = true
on_battery_command = true
low_battery_command = true
`)

	if err := Run(s); err != nil {
		t.Errorf("Run with a succeeding command failed: %v", err)
	}
}

func TestRunReportsCommandFailure(t *testing.T) {
	s := loadSettings(t, `[general]
[lid_switch]
on_ac_command = exit 3
on_battery_command = exit 3
low_battery_command = exit 3
`)

	err := Run(s)
	if err == nil {
		t.Fatal("Run should report a failing lid command")
	}
	if !strings.Contains(err.Error(), "lid command failed") {
		t.Errorf("error = %v, want lid command failure", err)
	}
}
