// Package config loads the hypridle-handler settings file.
// It provides typed accessors with fallbacks over the ini sections.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/ini.v1"

	"github.com/lvim-tech/hyprpower/pkg/power"
	"github.com/lvim-tech/hyprpower/pkg/utils"
)

// Defaults applied when a key is absent.
const (
	DefaultLockCommand          = "hyprlock"
	DefaultLowBatteryPercentage = 20
	DefaultNotificationTimeout  = 5000
	DefaultHypridleConfigPath   = "/tmp/hypridle.conf"
	DefaultPollInterval         = 30
)

// General holds the [general] section.
type General struct {
	LockCommand          string
	SystemdMode          bool
	EnableNotifications  bool
	NotificationTimeout  int
	HypridleConfigPath   string
	LowBatteryPercentage int
	PollInterval         int
}

// Profile holds the idle timeouts and commands for one power state.
// A timeout of zero or below means the listener is disabled.
type Profile struct {
	DimTimeout       int    `mapstructure:"dim_timeout"`
	DimCommand       string `mapstructure:"dim_command"`
	DimResumeCommand string `mapstructure:"dim_resume_command"`
	LockTimeout      int    `mapstructure:"lock_timeout"`
	DpmsOffTimeout   int    `mapstructure:"dpms_off_timeout"`
	DpmsOffCommand   string `mapstructure:"dpms_off_command"`
	DpmsOnCommand    string `mapstructure:"dpms_on_command"`
	SuspendTimeout   int    `mapstructure:"suspend_timeout"`
	SuspendCommand   string `mapstructure:"suspend_command"`
}

// Settings is the loaded settings file. Immutable after Load.
type Settings struct {
	General  General
	profiles map[power.State]Profile
	lid      map[string]string
	path     string
}

// DefaultPath returns ~/.config/hypridle-handler/config.ini.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "hypridle-handler", "config.ini")
}

// Load parses the settings file at path. Values are taken verbatim, there
// is no interpolation of % or environment syntax inside the file.
func Load(path string) (*Settings, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", path, err)
	}

	s := &Settings{
		profiles: make(map[power.State]Profile),
		lid:      make(map[string]string),
		path:     path,
	}

	gen := file.Section("general")
	s.General = General{
		LockCommand:          rawString(gen, "lock_command", DefaultLockCommand),
		SystemdMode:          gen.Key("systemd_mode").MustBool(false),
		EnableNotifications:  gen.Key("enable_notifications").MustBool(true),
		NotificationTimeout:  gen.Key("notification_timeout").MustInt(DefaultNotificationTimeout),
		HypridleConfigPath:   utils.ExpandPath(rawString(gen, "hypridle_config_path", DefaultHypridleConfigPath)),
		LowBatteryPercentage: gen.Key("low_battery_percentage").MustInt(DefaultLowBatteryPercentage),
		PollInterval:         gen.Key("poll_interval").MustInt(DefaultPollInterval),
	}

	// A non-positive interval would blow up the poll ticker.
	if s.General.PollInterval <= 0 {
		s.General.PollInterval = DefaultPollInterval
	}

	for _, state := range []power.State{power.OnAC, power.OnBattery, power.LowBattery} {
		profile, err := decodeProfile(file, state.String())
		if err != nil {
			return nil, err
		}
		s.profiles[state] = profile
	}

	if sec, err := file.GetSection("lid_switch"); err == nil {
		s.lid = sec.KeysHash()
	}

	return s, nil
}

// ProfileFor returns the profile for the given power state. A state whose
// section is absent gets a zero profile, all listeners disabled.
func (s *Settings) ProfileFor(state power.State) Profile {
	return s.profiles[state]
}

// LidCommand returns the trimmed lid_switch command for the given state,
// empty when none is configured.
func (s *Settings) LidCommand(state power.State) string {
	return strings.TrimSpace(s.lid[state.String()+"_command"])
}

// Path returns the file the settings were loaded from.
func (s *Settings) Path() string {
	return s.path
}

// rawString returns the key's raw value, bypassing the %(name)s resolution
// Key.String performs. Command strings must reach the rendered config
// verbatim.
func rawString(sec *ini.Section, key, fallback string) string {
	if v := sec.Key(key).Value(); v != "" {
		return v
	}
	return fallback
}

// decodeProfile maps a section's keys onto a Profile. Weak typing converts
// the ini string values into the profile's int timeouts.
func decodeProfile(file *ini.File, section string) (Profile, error) {
	var p Profile

	sec, err := file.GetSection(section)
	if err != nil {
		return p, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return p, fmt.Errorf("profile decoder: %w", err)
	}
	if err := decoder.Decode(sec.KeysHash()); err != nil {
		return p, fmt.Errorf("section [%s]: %w", section, err)
	}
	return p, nil
}
