package display

import (
	"regexp"
	"strings"
)

var (
	mdFence      = regexp.MustCompile("(?m)^```.*$")
	mdInlineCode = regexp.MustCompile("`([^`]*)`")
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdHTMLTag    = regexp.MustCompile(`<[^>]+>`)
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdBlockquote = regexp.MustCompile(`(?m)^\s*>\s?`)
	mdListMarker = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	mdHRule      = regexp.MustCompile(`(?m)^\s*(?:-{3,}|\*{3,}|_{3,})\s*$`)
	mdEmphasis   = regexp.MustCompile(`(\*{1,3}|_{1,3}|~~)([^*_~]+?)(\*{1,3}|_{1,3}|~~)`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// CleanMarkdown strips markdown syntax from a string and collapses all
// whitespace runs to single spaces. Image references are dropped
// entirely; link text is kept without its target.
func CleanMarkdown(input string) string {
	if input == "" {
		return ""
	}

	s := input
	s = mdFence.ReplaceAllString(s, "")
	s = mdImage.ReplaceAllString(s, "")
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdInlineCode.ReplaceAllString(s, "$1")
	s = mdHTMLTag.ReplaceAllString(s, "")
	s = mdHRule.ReplaceAllString(s, "")
	s = mdHeading.ReplaceAllString(s, "")
	s = mdBlockquote.ReplaceAllString(s, "")
	s = mdListMarker.ReplaceAllString(s, "")
	s = mdEmphasis.ReplaceAllString(s, "$2")

	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// trailing punctuation stripped before appending the ellipsis
var trailingPunct = regexp.MustCompile(`[\s.,;:\-]+$`)

// ShortenDescription builds a short plain-text preview from a
// markdown-capable description: strips markdown, normalizes whitespace,
// and truncates to max characters. The cut prefers the last word
// boundary when it falls within the trailing 40% of the budget.
func ShortenDescription(input string, max int) string {
	cleaned := CleanMarkdown(input)
	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}

	slice := string(runes[:max])
	base := slice
	if cut := strings.LastIndex(slice, " "); cut > max*60/100 {
		base = slice[:cut]
	}

	return trailingPunct.ReplaceAllString(base, "") + "…"
}
