// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postprocess

import (
	"regexp"
	"strings"
)

// summaryCell matches the first cell of a summary row: a bold label ending in
// a colon, optionally followed by text on the same cell.
var summaryCell = regexp.MustCompile(`^\*\*(.+?):\*\*\s*(.*)$`)

// Header rows of a reformatted summary table.
const (
	summaryHeader    = "| Field | Details |"
	summarySeparator = "| --- | --- |"
)

// SplitRow splits one table row into trimmed cells. Everything up to and
// including the first marker is ignored. A backslash protects the following
// byte from being read as a delimiter and is kept in the cell. The row is
// scanned byte by byte so cell contents are copied unchanged, even when they
// are not valid UTF-8.
func SplitRow(line string) []string {
	var (
		cells   []string
		cell    strings.Builder
		escaped bool
		started bool
	)
	line = strings.TrimRight(line, "\n")
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if !started {
			if ch == marker {
				started = true
			}
			continue
		}
		switch {
		case ch == marker && !escaped:
			cells = append(cells, trimSpace(cell.String()))
			cell.Reset()
		case ch == '\\' && !escaped:
			escaped = true
			cell.WriteByte(ch)
		default:
			escaped = false
			cell.WriteByte(ch)
		}
	}
	if cell.Len() > 0 {
		cells = append(cells, trimSpace(cell.String()))
	}
	return cells
}

// IsSummaryTable reports whether any row of block starts with a bold
// "**Label:**" cell.
func IsSummaryTable(block []string) bool {
	for _, line := range block {
		if isBlank(line) || !strings.Contains(line, "**") {
			continue
		}
		cells := SplitRow(line)
		if len(cells) == 0 {
			continue
		}
		if summaryCell.MatchString(cells[0]) {
			return true
		}
	}
	return false
}

// FormatSummaryTable rewrites a summary table as a two-column Field/Details
// table. Each row whose first cell is a bold label becomes one output row; the
// text after the label and every following non-empty cell are joined into the
// details column. Rows without a label are dropped.
func FormatSummaryTable(block []string) []string {
	out := []string{summaryHeader, summarySeparator}
	for _, line := range block {
		stripped := trimSpace(line)
		if stripped == "" || isSeparatorRow(stripped) {
			continue
		}
		cells := SplitRow(line)
		if len(cells) == 0 || cells[0] == "" {
			continue
		}
		m := summaryCell.FindStringSubmatch(cells[0])
		if m == nil {
			continue
		}
		label := trimSpace(m[1])
		details := trimSpace(m[2])
		for _, extra := range cells[1:] {
			if extra == "" {
				continue
			}
			extra = trimSpace(extra)
			if details == "" {
				details = extra
			} else {
				details += " " + extra
			}
		}
		out = append(out, "| "+label+" | "+details+" |")
	}
	return out
}

// isSeparatorRow reports whether a trimmed row consists only of markers and
// hyphens, e.g. "|---|---|".
func isSeparatorRow(stripped string) bool {
	return strings.Trim(strings.ReplaceAll(stripped, "-", ""), string(marker)) == ""
}

// RewriteSummaryTables replaces every summary table in lines with its
// Field/Details form. Other tables and non-table lines are kept verbatim.
func RewriteSummaryTables(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if !isTableRow(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && isTableRow(lines[j]) {
			j++
		}
		block := lines[i:j]
		if IsSummaryTable(block) {
			out = append(out, FormatSummaryTable(block)...)
		} else {
			out = append(out, block...)
		}
		i = j
	}
	return out
}

func isTableRow(line string) bool {
	return len(line) > 0 && line[0] == marker
}
