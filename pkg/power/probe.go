package power

import "github.com/sirupsen/logrus"

// Probe classifies the current power source. A nil battery and any sensor
// read error both degrade to OnAC rather than failing the caller.
func Probe(bat Battery, lowThreshold int) State {
	if bat == nil {
		return OnAC
	}

	plugged, err := bat.Plugged()
	if err != nil {
		logrus.WithError(err).Debug("battery status read failed, assuming AC")
		return OnAC
	}
	if plugged {
		return OnAC
	}

	pct, err := bat.Percent()
	if err != nil {
		logrus.WithError(err).Debug("battery capacity read failed, assuming AC")
		return OnAC
	}
	if pct <= float64(lowThreshold) {
		return LowBattery
	}
	return OnBattery
}
