package display

import (
	"strings"
	"testing"
)

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "hello world", "hello world"},
		{"bold", "a **bold** word", "a bold word"},
		{"italic", "an _italic_ word", "an italic word"},
		{"heading", "# Title\nbody", "Title body"},
		{"link keeps text", "see [the docs](https://example.com) here", "see the docs here"},
		{"image dropped", "before ![alt text](img.png) after", "before after"},
		{"inline code", "run `make build` now", "run make build now"},
		{"list markers", "- one\n- two\n- three", "one two three"},
		{"blockquote", "> quoted line", "quoted line"},
		{"whitespace collapsed", "a\n\n\tb   c", "a b c"},
		{"html tags", "a <em>styled</em> word", "a styled word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMarkdown(tt.input); got != tt.want {
				t.Errorf("CleanMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShortenDescription(t *testing.T) {
	t.Run("short input unchanged", func(t *testing.T) {
		if got := ShortenDescription("a short description", 140); got != "a short description" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("strips markdown before measuring", func(t *testing.T) {
		got := ShortenDescription("**bold** and _italic_", 140)
		if got != "bold and italic" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("truncates with ellipsis", func(t *testing.T) {
		long := strings.Repeat("word ", 60)
		got := ShortenDescription(long, 40)
		if !strings.HasSuffix(got, "…") {
			t.Errorf("got %q, want ellipsis suffix", got)
		}
		if len([]rune(got)) > 41 {
			t.Errorf("got %d runes, want <= 41", len([]rune(got)))
		}
	})

	t.Run("prefers word boundary near the end", func(t *testing.T) {
		// The boundary at "brown" falls in the trailing 40% of the
		// budget, so the cut lands there instead of mid-word.
		got := ShortenDescription("the quick brown foxes jumped over", 20)
		if strings.Contains(strings.TrimSuffix(got, "…"), "foxe") {
			t.Errorf("got %q, cut should land on a word boundary", got)
		}
	})

	t.Run("no trailing punctuation before ellipsis", func(t *testing.T) {
		got := ShortenDescription("one two, three, four, five, six, seven", 20)
		trimmed := strings.TrimSuffix(got, "…")
		if strings.HasSuffix(trimmed, ",") || strings.HasSuffix(trimmed, " ") {
			t.Errorf("got %q, want punctuation stripped before ellipsis", got)
		}
	})
}
