// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package targets plans which HTML files a batch converts and where each
// Markdown file is written.
package targets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manual-convert/pkg/types"
)

const (
	htmlExt     = ".html"
	markdownExt = ".md"
)

// Plan walks every configured directory under cfg.HTMLRoot and mirrors each
// *.html file into cfg.MarkdownRoot with a .md extension. Missing directories
// are skipped. Extra mappings follow, in configuration order, when their
// source exists. Jobs within a directory are in lexical order.
func Plan(cfg types.TargetsConfig) ([]types.Job, error) {
	var jobs []types.Job
	for _, dir := range cfg.Directories {
		root := filepath.Join(cfg.HTMLRoot, dir)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != htmlExt {
				return nil
			}
			rel, err := filepath.Rel(cfg.HTMLRoot, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, types.Job{
				Source: path,
				Dest:   filepath.Join(cfg.MarkdownRoot, MarkdownPath(rel)),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	for _, m := range cfg.Extra {
		if _, err := os.Stat(m.Source); err != nil {
			continue
		}
		jobs = append(jobs, types.Job{Source: m.Source, Dest: m.Dest})
	}
	return jobs, nil
}

// MarkdownPath replaces the extension of path with .md.
func MarkdownPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + markdownExt
}

// LoadFile reads a targets file: a YAML document with html_root,
// markdown_root, directories, and extra keys.
func LoadFile(path string) (types.TargetsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TargetsConfig{}, fmt.Errorf("reading targets file %s: %w", path, err)
	}
	var cfg types.TargetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.TargetsConfig{}, fmt.Errorf("parsing targets file %s: %w", path, err)
	}
	for i, m := range cfg.Extra {
		if m.Source == "" || m.Dest == "" {
			return types.TargetsConfig{}, fmt.Errorf("targets file %s: extra[%d] needs both source and dest", path, i)
		}
	}
	return cfg, nil
}
