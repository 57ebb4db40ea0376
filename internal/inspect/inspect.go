// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect parses converted Markdown and counts its block structure.
package inspect

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/manual-convert/pkg/types"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Inspect parses content as GitHub-flavored Markdown and returns counts of
// headings, tables, fenced and indented code blocks, and links.
func Inspect(content string) types.DocumentStats {
	var stats types.DocumentStats
	doc := md.Parser().Parse(text.NewReader([]byte(content)))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			stats.Headings++
		case extast.KindTable:
			stats.Tables++
		case ast.KindFencedCodeBlock:
			stats.FencedBlocks++
		case ast.KindCodeBlock:
			stats.IndentedBlocks++
		case ast.KindLink, ast.KindAutoLink:
			stats.Links++
		}
		return ast.WalkContinue, nil
	})

	return stats
}
