// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the outcome of a batch run to a YAML or JSON file.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manual-convert/pkg/types"
)

// Report is the on-disk form of a batch run.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Summary     Summary        `json:"summary" yaml:"summary"`
	Files       []types.Result `json:"files" yaml:"files"`
}

// Summary holds the per-status counts of a batch run.
type Summary struct {
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
	Total     int `json:"total" yaml:"total"`
}

// New builds a Report from a batch result.
func New(batch types.BatchResult, at time.Time) Report {
	return Report{
		GeneratedAt: at.UTC(),
		Summary: Summary{
			Converted: batch.Converted,
			Skipped:   batch.Skipped,
			Failed:    batch.Failed,
			Total:     batch.Total(),
		},
		Files: batch.Results,
	}
}

// Write saves r to path. A .json extension selects JSON; anything else is
// written as YAML.
func Write(path string, r Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = yaml.Marshal(&r)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
