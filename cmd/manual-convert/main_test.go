// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manual-convert/pkg/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	configureEnv(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual-convert.yaml")
	content := `targets:
  html_root: site/html
  markdown_root: site/md
  directories: [guides]
  extra:
    - source: site/index.html
      dest: site/md/index.md
converter:
  backend: native
  timeout: 2m
workers: 3
manifest: .manifest.db
frontmatter: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "site/html", cfg.Targets.HTMLRoot)
	assert.Equal(t, []string{"guides"}, cfg.Targets.Directories)
	assert.Equal(t, []types.Mapping{{Source: "site/index.html", Dest: "site/md/index.md"}}, cfg.Targets.Extra)
	assert.Equal(t, types.BackendNative, cfg.Converter.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Converter.Timeout)
	assert.Equal(t, "pandoc/core:latest", cfg.Converter.Image, "unset keys keep their default")
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, ".manifest.db", cfg.Manifest)
	assert.True(t, cfg.Frontmatter)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("MANUAL_CONVERT_CONVERTER_BACKEND", "container")
	t.Setenv("MANUAL_CONVERT_WORKERS", "5")
	t.Setenv("MANUAL_CONVERT_FORCE", "true")

	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, types.BackendContainer, cfg.Converter.Backend)
	assert.Equal(t, 5, cfg.Workers)
	assert.True(t, cfg.Force)
}
