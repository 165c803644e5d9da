// Package cleaner converts raw filing HTML into plain text suitable for
// chunking and embedding.
package cleaner

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the floor, in characters, below which a cleaned filing is
// discarded. Shorter documents are almost always boilerplate shells around an
// exhibit.
const MinTextLength = 200

// Pre-compiled expressions for tag stripping.
var (
	scriptTag   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	blockClose  = regexp.MustCompile(`(?i)</(p|div|tr|table|li|h[1-6])>`)
	brTag       = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	spaceRuns   = regexp.MustCompile(`[ \t]{2,}`)
)

// Text strips HTML down to plain text. Block-level closers and <br> become
// newlines so the filing's visual structure survives as line breaks, then
// entities are unescaped and whitespace is normalised.
func Text(rawHTML string) string {
	s := scriptTag.ReplaceAllString(rawHTML, "")
	s = styleTag.ReplaceAllString(s, "")
	s = noscriptTag.ReplaceAllString(s, "")
	s = brTag.ReplaceAllString(s, "\n")
	s = blockClose.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRuns.ReplaceAllString(s, " ")

	// Trim trailing spaces per line before collapsing blank runs.
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// Clean extracts text from raw HTML and reports whether the result is worth
// keeping. ok is false for empty input and for documents under MinTextLength.
func Clean(rawHTML string) (text string, ok bool) {
	if rawHTML == "" {
		return "", false
	}
	text = Text(rawHTML)
	if utf8.RuneCountInString(text) < MinTextLength {
		return "", false
	}
	return text, true
}
