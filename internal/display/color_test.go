package display

import (
	"regexp"
	"testing"
)

func TestColorFromStringDeterministic(t *testing.T) {
	inputs := []string{"", "a", "ops", "db", "release", "alice@example.com", "日本語"}

	hexPattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)

	for _, in := range inputs {
		first := ColorFromString(in)
		for i := 0; i < 5; i++ {
			if got := ColorFromString(in); got != first {
				t.Errorf("ColorFromString(%q) not stable: %s vs %s", in, first, got)
			}
		}
		if !hexPattern.MatchString(first) {
			t.Errorf("ColorFromString(%q) = %q, not a hex color", in, first)
		}
	}
}

func TestHueFromStringRange(t *testing.T) {
	inputs := []string{"", "x", "some-long-tag-name", "another", "12345", "ops", "release-train"}
	for _, in := range inputs {
		hue := HueFromString(in)
		if hue < 0 || hue >= 360 {
			t.Errorf("HueFromString(%q) = %d, want [0, 360)", in, hue)
		}
	}
}

func TestHueDiffersAcrossInputs(t *testing.T) {
	// Not guaranteed in general, but these known inputs should not all
	// collapse onto a single hue.
	hues := map[int]bool{}
	for _, in := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		hues[HueFromString(in)] = true
	}
	if len(hues) < 2 {
		t.Errorf("expected at least 2 distinct hues, got %d", len(hues))
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		bg   string
		want string
	}{
		{"#ffffff", "#000000"},
		{"#000000", "#ffffff"},
		{"#ffff00", "#000000"},
		{"#0000ff", "#ffffff"},
		{"bogus", "#ffffff"},
	}

	for _, tt := range tests {
		if got := ContrastColor(tt.bg); got != tt.want {
			t.Errorf("ContrastColor(%q) = %q, want %q", tt.bg, got, tt.want)
		}
	}
}
