// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manual-convert/internal/htmlmeta"
)

type frontmatter struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Source      string `yaml:"source"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends a YAML frontmatter block built from the HTML head
// of source to the normalized body.
func addFrontmatter(source, body string, at time.Time) (string, error) {
	meta, err := htmlmeta.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("reading metadata of %s: %w", source, err)
	}
	fm := frontmatter{
		Title:       meta.Title,
		Description: meta.Fields["description"],
		Source:      source,
		ConvertedAt: at.Format(time.RFC3339),
	}
	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	return b.String(), nil
}
