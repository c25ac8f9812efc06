// Package utils provides common utility functions for hyprpower.
// It includes helpers for path expansion, command lookup and notifications.
package utils

import (
	"os"
	"os/exec"
	"path/filepath"
)

// CommandExists reports whether cmd resolves in PATH.
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// ExpandPath expands ~ and environment variables in path.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home := os.Getenv("HOME")
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path)
}
