// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseBlankLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "run of three blanks keeps two",
			lines: []string{"a", "", "", "", "b"},
			want:  []string{"a", "", "", "b"},
		},
		{
			name:  "trailing whitespace is trimmed",
			lines: []string{"a  ", "b\t"},
			want:  []string{"a", "b"},
		},
		{
			name:  "whitespace-only lines count as blank",
			lines: []string{"a", " ", "\t", "  ", "b"},
			want:  []string{"a", "", "", "b"},
		},
		{
			name:  "run resets after content",
			lines: []string{"", "", "", "a", "", "", "", "b"},
			want:  []string{"", "", "a", "", "", "b"},
		},
		{
			name:  "leading indentation is kept",
			lines: []string{"    code  "},
			want:  []string{"    code"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseBlankLines(tt.lines)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CollapseBlankLines(got), "collapsing must be idempotent")
		})
	}
}

func TestNormalizeEntities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "angle brackets", text: `x \< y \> z`, want: "x &lt; y &gt; z\n"},
		{name: "square brackets", text: `see \[1\]`, want: "see &#91;1&#93;\n"},
		{name: "non-breaking space", text: "a\u00a0b", want: "a b\n"},
		{name: "unescaped brackets are kept", text: "<a> [b]", want: "<a> [b]\n"},
		{name: "surrounding whitespace is trimmed", text: "\n\n  body \n\n", want: "body\n"},
		{name: "empty stays empty", text: "", want: ""},
		{name: "whitespace only becomes empty", text: " \n \n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEntities(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeEntities(got), "normalizing must be idempotent")
		})
	}
}
