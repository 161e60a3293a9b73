package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"dev", "dev"},
		{"1..3", "1..3"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	major, minor, patch, suffix, ok := split("10.20.30-rc1")
	if !ok || major != "10" || minor != "20" || patch != "30" || suffix != "-rc1" {
		t.Fatalf("split = %q %q %q %q %v", major, minor, patch, suffix, ok)
	}
	if _, _, _, _, ok := split("1.2"); ok {
		t.Fatal("split(1.2) should fail")
	}
}
