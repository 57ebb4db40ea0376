// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manual-convert/internal/convert"
	"github.com/pdiddy/manual-convert/internal/manifest"
	"github.com/pdiddy/manual-convert/internal/report"
	"github.com/pdiddy/manual-convert/internal/targets"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every configured HTML directory and single-file mapping",
	Long: `Batch walks each configured directory under the HTML root for .html
files, mirrors them under the Markdown root with a .md extension, and converts
the configured single-file mappings. Files are converted concurrently; a
failure in one file does not stop the others.

With a manifest, files whose source content, destination, and conversion
settings (backend, image, Lua filter, frontmatter) are unchanged since their
last successful conversion are skipped unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	keys := map[string]string{
		"workers":  "workers",
		"manifest": "manifest",
		"force":    "force",
		"report":   "report",
	}
	maps.Copy(keys, converterFlagKeys)
	if err := bindFlags(cmd, keys); err != nil {
		return err
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("targets"); path != "" {
		t, err := targets.LoadFile(path)
		if err != nil {
			return err
		}
		cfg.Targets = t
	}

	jobs, err := targets.Plan(cfg.Targets)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No HTML files found.")
		return nil
	}

	c, err := convert.NewConverter(cfg.Converter)
	if err != nil {
		return err
	}

	opts := convert.BatchOptions{
		Options: convert.Options{Frontmatter: cfg.Frontmatter},
		Workers: cfg.Workers,
		Force:   cfg.Force,
	}
	if cfg.Manifest != "" {
		settings, err := convert.SettingsFingerprint(cfg.Converter)
		if err != nil {
			return err
		}
		store, err := manifest.Open(cfg.Manifest)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Manifest = store
		opts.Settings = settings
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fmt.Fprintf(os.Stderr, "Jobs: %d, workers: %d, backend: %s\n",
			len(jobs), convert.ResolveWorkers(cfg.Workers), cfg.Converter.Backend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := convert.Batch(ctx, c, jobs, opts, os.Stdout)

	if cfg.Report != "" {
		if err := report.Write(cfg.Report, report.New(result, time.Now())); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write report: %v\n", err)
		} else {
			fmt.Printf("Report written to %s\n", cfg.Report)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	addConverterFlags(batchCmd)
	batchCmd.Flags().Int("workers", 0, "files converted concurrently (0 = half of GOMAXPROCS, at most 8)")
	batchCmd.Flags().String("manifest", "", "SQLite manifest for incremental runs (empty disables)")
	batchCmd.Flags().Bool("force", false, "convert every file even when unchanged")
	batchCmd.Flags().String("report", "", "write a YAML or JSON report of the run to this path")
	batchCmd.Flags().String("targets", "", "YAML file overriding the configured directories and mappings")

	rootCmd.AddCommand(batchCmd)
}
