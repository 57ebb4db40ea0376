// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postprocess

import "strings"

// FenceIndentedCode converts indented code blocks into fenced blocks.
//
// Only a block that opens after a blank line (or at the start of the
// document) and contains at least one internal empty line is fenced. An
// indented line directly after prose is a continuation line and is kept as
// is, as is a single contiguous indented run, which is usually a list or a
// definition rather than code.
func FenceIndentedCode(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		line := lines[i]
		if !strings.HasPrefix(line, indent) {
			out = append(out, line)
			i++
			continue
		}
		if i > 0 && !isBlank(lines[i-1]) {
			out = append(out, line)
			i++
			continue
		}

		block, sawBlank, j := collectIndented(lines, i)
		i = j

		if sawBlank {
			body := trimEmpty(block)
			if len(body) > 0 {
				out = append(out, fence)
				out = append(out, body...)
				out = append(out, fence)
				continue
			}
			block = body
		}
		for _, part := range block {
			if part == "" {
				out = append(out, "")
			} else {
				out = append(out, indent+part)
			}
		}
	}
	return out
}

// collectIndented gathers the run of indented or empty lines starting at
// start. Indented lines are returned without their prefix. It reports whether
// an empty line was seen and the index of the first line past the run.
func collectIndented(lines []string, start int) (block []string, sawBlank bool, end int) {
	end = start
	for end < len(lines) {
		current := lines[end]
		switch {
		case strings.HasPrefix(current, indent):
			block = append(block, current[len(indent):])
		case current == "":
			block = append(block, "")
			sawBlank = true
		default:
			return block, sawBlank, end
		}
		end++
	}
	return block, sawBlank, end
}

// trimEmpty drops leading and trailing empty entries.
func trimEmpty(block []string) []string {
	for len(block) > 0 && block[len(block)-1] == "" {
		block = block[:len(block)-1]
	}
	for len(block) > 0 && block[0] == "" {
		block = block[1:]
	}
	return block
}
