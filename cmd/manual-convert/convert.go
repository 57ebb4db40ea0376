// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manual-convert/internal/convert"
	"github.com/pdiddy/manual-convert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.html> <output.md>",
	Short: "Convert a single HTML page to normalized Markdown",
	Long: `Convert runs the configured converter backend on one HTML file,
normalizes the result, and writes it to the output path. Parent directories
of the output are created as needed.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, converterFlagKeys); err != nil {
		return err
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	c, err := convert.NewConverter(cfg.Converter)
	if err != nil {
		return err
	}

	job := types.Job{Source: args[0], Dest: args[1]}
	res, err := convert.File(context.Background(), c, job, convert.Options{Frontmatter: cfg.Frontmatter})
	if err != nil {
		// Reported once, by cobra.
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res types.Result) {
	fmt.Fprintf(w, "converted: %s -> %s\n", res.Source, res.Dest)
	fmt.Fprintf(w, "  %d bytes, %d headings, %d tables, %d code blocks, %d links\n",
		res.Bytes, res.Stats.Headings, res.Stats.Tables,
		res.Stats.FencedBlocks+res.Stats.IndentedBlocks, res.Stats.Links)
}

// converterFlagKeys maps config keys to the converter flags shared by
// convert and batch.
var converterFlagKeys = map[string]string{
	"converter.backend":     "backend",
	"converter.pandoc_path": "pandoc",
	"converter.lua_filter":  "lua-filter",
	"converter.image":       "image",
	"converter.timeout":     "timeout",
	"frontmatter":           "frontmatter",
}

func addConverterFlags(cmd *cobra.Command) {
	d := types.DefaultConfig().Converter
	cmd.Flags().String("backend", string(d.Backend), "conversion backend: pandoc, container, or native")
	cmd.Flags().String("pandoc", d.PandocPath, "pandoc executable for the pandoc backend")
	cmd.Flags().String("lua-filter", d.LuaFilter, "pandoc Lua filter applied during conversion")
	cmd.Flags().String("image", d.Image, "container image for the container backend")
	cmd.Flags().Duration("timeout", 0, "time limit for one conversion (0 = none)")
	cmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter with the page title and source")
}

func init() {
	addConverterFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}
