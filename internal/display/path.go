package display

import "strings"

// Ellipsis is the marker prepended to a path when leading segments have
// been dropped.
const Ellipsis = "…/"

// Character budget approximation: roughly 10 display units per character.
const charWidth = 10

// Widths below this collapse to the minimal "…/parent/last" form.
const narrowWidth = 200

// ShortenPath shortens a filesystem path to fit the available display
// width while preserving context. The final segment is always kept;
// when leading segments are dropped the result is prefixed with the
// ellipsis marker. Absolute paths that fit entirely keep their leading
// separator. minSegments is the segment count below which the path is
// returned unchanged (use 2 for the common case).
func ShortenPath(path string, maxWidth int, minSegments int) string {
	if path == "" {
		return ""
	}

	normalized := strings.ReplaceAll(path, "\\", "/")
	var segments []string
	for _, seg := range strings.Split(normalized, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	if len(segments) <= minSegments {
		return path
	}

	last := segments[len(segments)-1]

	// Narrow pane: show at most the parent and the final segment.
	if maxWidth < narrowWidth {
		if len(segments) == 1 {
			return last
		}
		parent := segments[len(segments)-2]
		return Ellipsis + parent + "/" + last
	}

	budget := maxWidth / charWidth
	included := []string{last}
	length := len(last)

	// Add segments right to left while the budget allows.
	for i := len(segments) - 2; i >= 0; i-- {
		seg := segments[i]
		next := length + 1 + len(seg)
		if next+len(Ellipsis) > budget && i > 0 {
			return Ellipsis + strings.Join(included, "/")
		}
		included = append([]string{seg}, included...)
		length = next
	}

	result := strings.Join(included, "/")
	if strings.HasPrefix(normalized, "/") {
		return "/" + result
	}
	return result
}
