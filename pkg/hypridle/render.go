// Package hypridle synthesizes hypridle configuration from power-state
// profiles and applies it to the running consumer.
package hypridle

import (
	"fmt"
	"strings"

	"github.com/lvim-tech/hyprpower/pkg/config"
	"github.com/lvim-tech/hyprpower/pkg/power"
)

// DefaultDpmsOnCommand is used for resume hooks when a profile does not set
// dpms_on_command.
const DefaultDpmsOnCommand = "hyprctl dispatch dpms on"

// MissingCommandError reports a listener with a positive timeout but no
// command to run. An idle listener with no action is a misconfiguration,
// not something to silently drop.
type MissingCommandError struct {
	Listener string
	Key      string
}

func (e *MissingCommandError) Error() string {
	return fmt.Sprintf("%s listener is enabled but %s is not set", e.Listener, e.Key)
}

// listenerSpec is one optional listener block. Emitted only when the timeout
// is positive; command is then required, resume stays optional.
type listenerSpec struct {
	name    string
	key     string
	timeout int
	command string
	resume  string
}

// Render produces hypridle.conf text for the given power state. Rendering is
// pure: the same state and settings always yield byte-identical text.
func Render(state power.State, settings *config.Settings) (string, error) {
	profile := settings.ProfileFor(state)
	lock := settings.General.LockCommand

	dpmsOn := profile.DpmsOnCommand
	if dpmsOn == "" {
		dpmsOn = DefaultDpmsOnCommand
	}

	// Fixed emission order: dim, lock, dpms, suspend.
	listeners := []listenerSpec{
		{name: "dim", key: "dim_command", timeout: profile.DimTimeout, command: profile.DimCommand, resume: profile.DimResumeCommand},
		{name: "lock", key: "lock_command", timeout: profile.LockTimeout, command: lock},
		{name: "dpms", key: "dpms_off_command", timeout: profile.DpmsOffTimeout, command: profile.DpmsOffCommand, resume: dpmsOn},
		{name: "suspend", key: "suspend_command", timeout: profile.SuspendTimeout, command: profile.SuspendCommand},
	}

	var b strings.Builder
	b.WriteString("general {\n")
	fmt.Fprintf(&b, "    lock_cmd = pidof %s || %s\n", lock, lock)
	b.WriteString("    before_sleep_cmd = loginctl lock-session\n")
	fmt.Fprintf(&b, "    after_sleep_cmd = %s\n", dpmsOn)
	b.WriteString("}\n")

	for _, l := range listeners {
		if l.timeout <= 0 {
			continue
		}
		if l.command == "" {
			return "", &MissingCommandError{Listener: l.name, Key: l.key}
		}

		b.WriteString("\nlistener {\n")
		fmt.Fprintf(&b, "    timeout = %d\n", l.timeout)
		fmt.Fprintf(&b, "    on-timeout = %s\n", l.command)
		if l.resume != "" {
			fmt.Fprintf(&b, "    on-resume = %s\n", l.resume)
		}
		b.WriteString("}\n")
	}

	return b.String(), nil
}
