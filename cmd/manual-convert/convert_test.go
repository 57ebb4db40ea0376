// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "page.html")
	dest := filepath.Join(dir, "out", "page.md")
	require.NoError(t, os.WriteFile(src, []byte("<html><body><h1>Widget</h1><p>Body text.</p></body></html>"), 0o644))

	stdout, _, err := executeRoot(t, "convert", "--backend", "native", src, dest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "converted: "+src+" -> "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Widget")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestConvertCommand_FailureReportedOnce(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.html")

	stdout, stderr, err := executeRoot(t, "convert", "--backend", "native", missing, filepath.Join(dir, "missing.md"))
	require.Error(t, err)

	all := stdout + stderr
	assert.Equal(t, 1, strings.Count(all, "opening HTML "+missing), "error should be printed exactly once, got:\n%s", all)
	assert.NotContains(t, all, "failed:")
}
