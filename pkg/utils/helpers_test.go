package utils

import "testing"

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/hypridle-handler/config.ini", "/home/test/.config/hypridle-handler/config.ini"},
		{"/tmp/hypridle.conf", "/tmp/hypridle.conf"},
		{"~", "/home/test"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommandExists(t *testing.T) {
	if !CommandExists("sh") {
		t.Error("sh should exist in PATH")
	}
	if CommandExists("definitely-not-a-real-command-42") {
		t.Error("nonexistent command reported as existing")
	}
}
