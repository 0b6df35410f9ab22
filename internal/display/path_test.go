package display

import (
	"strings"
	"testing"
)

func TestShortenPath(t *testing.T) {
	t.Run("wide width keeps the whole path", func(t *testing.T) {
		got := ShortenPath("/a/b/c/d.txt", 500, 2)
		if got != "/a/b/c/d.txt" {
			t.Errorf("got %q, want %q", got, "/a/b/c/d.txt")
		}
	})

	t.Run("last segment is never dropped", func(t *testing.T) {
		paths := []string{
			"/a/b/c/d.txt",
			"/usr/local/share/doc/readme.md",
			"relative/path/to/file.go",
		}
		for _, p := range paths {
			for _, width := range []int{50, 100, 250, 500, 1000} {
				got := ShortenPath(p, width, 2)
				segments := strings.Split(strings.Trim(p, "/"), "/")
				last := segments[len(segments)-1]
				if !strings.Contains(got, last) {
					t.Errorf("ShortenPath(%q, %d) = %q, lost last segment %q", p, width, got, last)
				}
			}
		}
	})

	t.Run("narrow width collapses to parent and last", func(t *testing.T) {
		got := ShortenPath("/a/b/c/d.txt", 100, 2)
		if !strings.HasPrefix(got, Ellipsis) {
			t.Errorf("got %q, want ellipsis prefix", got)
		}
		if !strings.HasSuffix(got, "c/d.txt") {
			t.Errorf("got %q, want parent and last segment", got)
		}
	})

	t.Run("short paths returned unchanged", func(t *testing.T) {
		if got := ShortenPath("/a/b", 100, 2); got != "/a/b" {
			t.Errorf("got %q, want %q", got, "/a/b")
		}
		if got := ShortenPath("file.txt", 100, 2); got != "file.txt" {
			t.Errorf("got %q, want %q", got, "file.txt")
		}
	})

	t.Run("windows separators normalized", func(t *testing.T) {
		got := ShortenPath(`C:\projects\app\main.go`, 100, 2)
		if !strings.Contains(got, "main.go") {
			t.Errorf("got %q, want main.go retained", got)
		}
		if strings.Contains(got, `\`) {
			t.Errorf("got %q, want no backslashes", got)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if got := ShortenPath("", 500, 2); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("mid width drops leading segments with marker", func(t *testing.T) {
		p := "/one/two/three/four/five/six/seven/eight/nine/ten/final.yaml"
		got := ShortenPath(p, 300, 2)
		if !strings.HasPrefix(got, Ellipsis) {
			t.Errorf("got %q, want ellipsis prefix", got)
		}
		if !strings.HasSuffix(got, "final.yaml") {
			t.Errorf("got %q, want final segment kept", got)
		}
	})
}
