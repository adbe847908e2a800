// Package extract turns raw Notion block trees into flat, normalized
// content: a depth-first element list and a cleaned plain-text rendering.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Runs of four or more newlines are three or more blank lines.
var blankRuns = regexp.MustCompile(`\n{4,}`)

// Normalize cleans raw text for downstream consumption. Rules, in order:
// Unicode space variants become regular spaces, CR/CRLF become LF, trailing
// whitespace is stripped per line, runs of three or more blank lines
// collapse to one blank line, and leading/trailing blank lines are removed.
// Pure and idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.Map(func(r rune) rune {
		if r != ' ' && unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n")
}
