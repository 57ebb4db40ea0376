// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manual-convert/pkg/types"
)

func sampleBatch() types.BatchResult {
	var b types.BatchResult
	b.Add(types.Result{
		Job:    types.Job{Source: "html/a.html", Dest: "md/a.md"},
		Status: types.ConversionDone,
		Bytes:  120,
		Stats:  types.DocumentStats{Headings: 1, Tables: 2},
	})
	b.Add(types.Result{
		Job:    types.Job{Source: "html/b.html", Dest: "md/b.md"},
		Status: types.ConversionFailed,
		Error:  "pandoc conversion of html/b.html failed: exit status 1",
	})
	b.Add(types.Result{
		Job:    types.Job{Source: "html/c.html", Dest: "md/c.md"},
		Status: types.ConversionSkipped,
	})
	return b
}

func TestNew(t *testing.T) {
	at := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	r := New(sampleBatch(), at)

	assert.Equal(t, Summary{Converted: 1, Skipped: 1, Failed: 1, Total: 3}, r.Summary)
	assert.Equal(t, at, r.GeneratedAt)
	assert.Len(t, r.Files, 3)
}

func TestWrite_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "batch.yaml")
	require.NoError(t, Write(path, New(sampleBatch(), time.Now())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 3, got.Summary.Total)
	require.Len(t, got.Files, 3)
	assert.Equal(t, "html/a.html", got.Files[0].Source)
	assert.Equal(t, 2, got.Files[0].Stats.Tables)
	assert.Contains(t, string(data), "source: html/b.html")
	assert.Contains(t, string(data), "status: failed")
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, Write(path, New(sampleBatch(), time.Now())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1, got.Summary.Failed)
	assert.Equal(t, types.ConversionSkipped, got.Files[2].Status)
}
