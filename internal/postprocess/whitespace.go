// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postprocess

import "strings"

// CollapseBlankLines right-trims every non-blank line and keeps at most two
// consecutive blank lines. Whitespace-only lines are emitted as empty lines.
func CollapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	streak := 0
	for _, line := range lines {
		if !isBlank(line) {
			streak = 0
			out = append(out, trimRight(line))
			continue
		}
		streak++
		if streak <= maxBlankRun {
			out = append(out, "")
		}
	}
	return out
}

// entities maps converter escapes to the HTML entities GitHub renders
// literally. Applied in order.
var entities = strings.NewReplacer(
	`\<`, "&lt;",
	`\>`, "&gt;",
	`\[`, "&#91;",
	`\]`, "&#93;",
)

// NormalizeEntities trims the document, replaces non-breaking spaces with
// ordinary spaces, and replaces escaped angle brackets and square brackets
// with HTML entities. A non-empty result ends with a single newline.
func NormalizeEntities(text string) string {
	text = trimSpace(text)
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = entities.Replace(text)
	if text == "" {
		return ""
	}
	return text + "\n"
}
