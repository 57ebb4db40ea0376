// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manual-convert/internal/postprocess"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file.md]",
	Short: "Run only the Markdown post-processing step",
	Long: `Normalize reads raw Markdown from a file (or stdin when no file is
given), applies the post-processing pipeline, and writes the result to stdout
or to --output. No HTML conversion takes place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return normalize(in, os.Stdout)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := normalize(in, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// normalize copies r to w through the post-processing pipeline.
func normalize(r io.Reader, w io.Writer) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	_, err = io.WriteString(w, postprocess.Process(string(raw)))
	return err
}

func init() {
	normalizeCmd.Flags().StringP("output", "o", "", "write the result to this file instead of stdout")

	rootCmd.AddCommand(normalizeCmd)
}
