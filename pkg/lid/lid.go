// Package lid implements the one-shot lid-close handler. It shares the
// daemon's settings file but keeps no state of its own.
package lid

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lvim-tech/hyprpower/pkg/config"
	"github.com/lvim-tech/hyprpower/pkg/power"
)

// Run probes the power state once and executes the matching lid_switch
// command from the settings. An unset command is a no-op, not an error.
func Run(settings *config.Settings) error {
	state := power.Probe(power.FindBattery(), settings.General.LowBatteryPercentage)

	command := settings.LidCommand(state)
	if command == "" {
		logrus.WithField("state", state.String()).Info("lid closed, no command configured")
		return nil
	}

	logrus.WithField("state", state.String()).WithField("command", command).Info("lid closed")
	if out, err := exec.Command("sh", "-c", command).CombinedOutput(); err != nil {
		return fmt.Errorf("lid command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return nil
}
