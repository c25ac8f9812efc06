package utils

import (
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"
)

const notifyTitle = "Hypridle Manager"

// Notifier sends fire-and-forget desktop notifications through whichever
// notification tool is installed.
type Notifier struct {
	Enabled bool
	Timeout int // milliseconds
}

// Notify shows message with normal urgency. Delivery failures never reach
// the caller.
func (n *Notifier) Notify(message string) {
	n.send(message, "normal")
}

// NotifyError shows message with critical urgency.
func (n *Notifier) NotifyError(message string) {
	n.send(message, "critical")
}

func (n *Notifier) send(message, urgency string) {
	if n == nil || !n.Enabled {
		return
	}

	tool := detectNotificationTool()
	if tool == "" {
		logrus.Debug("no notification tool found, skipping notification")
		return
	}

	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 5000
	}

	cmd := exec.Command(tool,
		"-u", urgency,
		"-t", strconv.Itoa(timeout),
		notifyTitle,
		message)
	if err := cmd.Start(); err != nil {
		logrus.WithError(err).Debug("failed to send notification")
	}
}

// detectNotificationTool prefers dunstify, falls back to notify-send.
func detectNotificationTool() string {
	if CommandExists("dunstify") {
		return "dunstify"
	}
	if CommandExists("notify-send") {
		return "notify-send"
	}
	return ""
}
