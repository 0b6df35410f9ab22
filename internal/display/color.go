// Package display provides pure derivation helpers for presentation
// surfaces: deterministic colors for labels, path shortening for narrow
// panes, and markdown-stripped description previews.
package display

import (
	"fmt"
	"math"
	"strconv"
)

// Fixed saturation/lightness for generated label colors. Hue carries all
// of the per-string variance.
const (
	colorSaturation = 65
	colorLightness  = 55
)

// hashString computes a djb2-style rolling hash over the string's
// characters, accumulated as an unsigned 32-bit value.
func hashString(s string) uint32 {
	var h uint32 = 5381
	for _, r := range s {
		h = ((h << 5) + h) ^ uint32(r)
	}
	return h
}

// HueFromString maps a string to a hue in [0, 360).
func HueFromString(s string) int {
	return int(hashString(s) % 360)
}

// ColorFromString maps an arbitrary string to a stable "#rrggbb" hex
// color. The same input always produces the same color, so a tag gets
// the same color everywhere it appears.
func ColorFromString(s string) string {
	r, g, b := hslToRGB(float64(HueFromString(s)), colorSaturation, colorLightness)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// hslToRGB converts an HSL triple (h in degrees, s and l in percent) to
// 8-bit RGB components.
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	s /= 100
	l /= 100

	k := func(n float64) float64 { return math.Mod(n+h/30, 12) }
	a := s * math.Min(l, 1-l)
	f := func(n float64) float64 {
		return l - a*math.Max(-1, math.Min(k(n)-3, math.Min(9-k(n), 1)))
	}

	return uint8(math.Round(255 * f(0))),
		uint8(math.Round(255 * f(8))),
		uint8(math.Round(255 * f(4)))
}

// ContrastColor returns "#000000" or "#ffffff", whichever reads better
// on top of the given "#rrggbb" background.
func ContrastColor(bgHex string) string {
	if len(bgHex) != 7 || bgHex[0] != '#' {
		return "#ffffff"
	}
	r, errR := strconv.ParseUint(bgHex[1:3], 16, 8)
	g, errG := strconv.ParseUint(bgHex[3:5], 16, 8)
	b, errB := strconv.ParseUint(bgHex[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return "#ffffff"
	}

	luminance := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	if luminance > 140 {
		return "#000000"
	}
	return "#ffffff"
}
