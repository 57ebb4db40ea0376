// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postprocess reshapes the raw GitHub-flavored Markdown emitted by an
// HTML converter into its canonical form. Every stage is a total function over
// a slice of lines: summary tables are rewritten, eligible indented code
// blocks become fenced blocks, blank lines are collapsed, and a fixed set of
// escaped characters is replaced with HTML entities.
package postprocess

import (
	"strings"
	"unicode"
)

const (
	// marker starts a table row and delimits its cells.
	marker = '|'

	// indent is the prefix of an indented code line.
	indent = "    "

	// fence opens and closes a fenced code block.
	fence = "```"

	// maxBlankRun is the number of consecutive blank lines kept per run.
	maxBlankRun = 2
)

// lineBreaks rewrites every line boundary to LF: CRLF, CR, vertical tab, form
// feed, the file/group/record separators, NEL, and the Unicode line and
// paragraph separators. CRLF is listed first so it counts as one boundary.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// Process runs the full pipeline over raw converter output and returns the
// normalized document. A non-empty result always ends with exactly one
// newline; an empty result is the empty string.
func Process(raw string) string {
	return ProcessLines(SplitLines(raw))
}

// ProcessLines runs the full pipeline over a document already split into
// lines.
func ProcessLines(lines []string) string {
	lines = RewriteSummaryTables(lines)
	lines = FenceIndentedCode(lines)
	lines = CollapseBlankLines(lines)
	return NormalizeEntities(Join(lines))
}

// SplitLines splits text into lines without their terminators. Every
// boundary listed in lineBreaks ends a line. A trailing terminator does not
// produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = lineBreaks.Replace(text)
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Join assembles lines into a single text, right-trimming each line.
func Join(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = trimRight(l)
	}
	return strings.Join(trimmed, "\n")
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which converters occasionally leave in output.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isBlank(line string) bool {
	return trimSpace(line) == ""
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, isSpace)
}
