package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/zenith/zenith.db", filepath.Join(home, ".config/zenith/zenith.db")},
		{"~", home},
		{"/var/lib/zenith.db", "/var/lib/zenith.db"},
		{"postgres://user@localhost/db", "postgres://user@localhost/db"},
		{"~other/file", "~other/file"},
	}

	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
