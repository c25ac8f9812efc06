package power

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Battery reports charge state for a single battery sensor.
type Battery interface {
	Plugged() (bool, error)
	Percent() (float64, error)
}

const powerSupplyDir = "/sys/class/power_supply"

// sysfsBattery reads one battery entry under /sys/class/power_supply.
type sysfsBattery struct {
	dir string
}

// FindBattery returns the first battery sensor on the host, or nil when
// there is none (desktop, or no battery driver loaded).
func FindBattery() Battery {
	entries, err := os.ReadDir(powerSupplyDir)
	if err != nil {
		return nil
	}

	for _, e := range entries {
		dir := filepath.Join(powerSupplyDir, e.Name())
		typ, err := readSysfs(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		if typ == "Battery" {
			return &sysfsBattery{dir: dir}
		}
	}

	return nil
}

// Plugged reports whether an external supply is present. Charging, Full and
// "Not charging" all count as plugged; only Discharging does not.
func (b *sysfsBattery) Plugged() (bool, error) {
	status, err := readSysfs(filepath.Join(b.dir, "status"))
	if err != nil {
		return false, err
	}
	return status != "Discharging", nil
}

// Percent returns the remaining charge in the 0-100 range.
func (b *sysfsBattery) Percent() (float64, error) {
	raw, err := readSysfs(filepath.Join(b.dir, "capacity"))
	if err != nil {
		return 0, err
	}

	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("bad capacity %q: %w", raw, err)
	}
	return pct, nil
}

func readSysfs(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
