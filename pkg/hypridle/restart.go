package hypridle

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// RestartStrategy selects how the hypridle process is cycled after a config
// write. Chosen once at startup from the systemd_mode setting.
type RestartStrategy int

const (
	// Direct kills and relaunches hypridle itself.
	Direct RestartStrategy = iota
	// Supervised delegates the restart to the user systemd instance.
	Supervised
)

const (
	processName = "hypridle"
	serviceUnit = "hypridle.service"

	// restartGrace is how long a killed instance gets to exit and release
	// its display handles before the replacement starts.
	restartGrace = time.Second
)

// Applier writes rendered configuration and restarts the consumer process.
type Applier interface {
	Apply(text string) error
}

// Restarter is the downstream side of a power transition: it persists the
// rendered config and cycles hypridle.
type Restarter struct {
	ConfigPath string
	Strategy   RestartStrategy
}

// Apply writes text to the configured path and restarts hypridle. Write
// failures and direct-mode launch failures are returned; a supervised
// restart failure is only logged since the supervisor retries on its own.
func (r *Restarter) Apply(text string) error {
	if err := r.writeConfig(text); err != nil {
		return err
	}

	if r.Strategy == Supervised {
		if out, err := exec.Command("systemctl", "--user", "restart", serviceUnit).CombinedOutput(); err != nil {
			logrus.WithError(err).WithField("output", strings.TrimSpace(string(out))).
				Error("failed to restart hypridle service")
		}
		return nil
	}

	// pkill exits 1 when no instance is running, which is fine here.
	_ = exec.Command("pkill", processName).Run()
	time.Sleep(restartGrace)

	cmd := exec.Command(processName)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", processName, err)
	}

	// Reap the detached child so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()

	return nil
}

// writeConfig persists the rendered text, truncating any previous config.
func (r *Restarter) writeConfig(text string) error {
	if err := os.WriteFile(r.ConfigPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.ConfigPath, err)
	}
	return nil
}

// EnsureServiceEnabled enables hypridle.service in the user systemd instance
// if it is not already. Failures are logged, never fatal.
func EnsureServiceEnabled() {
	out, err := exec.Command("systemctl", "--user", "is-enabled", serviceUnit).Output()
	if err == nil && strings.TrimSpace(string(out)) == "enabled" {
		return
	}

	logrus.Infof("%s is not enabled, enabling it now", serviceUnit)
	if out, err := exec.Command("systemctl", "--user", "enable", "--now", serviceUnit).CombinedOutput(); err != nil {
		logrus.WithError(err).WithField("output", strings.TrimSpace(string(out))).
			Error("failed to enable hypridle service")
	}
}
