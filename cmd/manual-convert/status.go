// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manual-convert/internal/manifest"
	"github.com/pdiddy/manual-convert/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the conversions recorded in the manifest",
	Long: `Status prints the last recorded outcome of every source file in the
conversion manifest. Use --status to show only converted or failed files.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"manifest": "manifest"}); err != nil {
		return err
	}
	path := viper.GetString("manifest")
	if path == "" {
		return fmt.Errorf("no manifest configured: pass --manifest or set manifest in the config file")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}

	store, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	status, _ := cmd.Flags().GetString("status")
	results, err := store.List(context.Background(), manifest.ListOptions{
		Status: types.ConversionStatus(status),
	})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	formatStatus(os.Stdout, results)
	return nil
}

func formatStatus(w io.Writer, results []types.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-9s  %-50s  %-20s  %s\n", "Status", "Source", "Converted", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		source := r.Source
		if len(source) > 50 {
			source = "..." + source[len(source)-47:]
		}
		when := "-"
		if !r.ConvertedAt.IsZero() {
			when = r.ConvertedAt.Format("2006-01-02 15:04:05")
		}
		detail := r.Error
		if r.Status == types.ConversionDone {
			detail = fmt.Sprintf("%d bytes, %d tables", r.Bytes, r.Stats.Tables)
		}
		fmt.Fprintf(w, "%-9s  %-50s  %-20s  %s\n", r.Status, source, when, detail)
	}

	fmt.Fprintf(w, "\n%d files\n", len(results))
}

func init() {
	statusCmd.Flags().String("manifest", "", "SQLite manifest to read (default from config)")
	statusCmd.Flags().String("status", "", "show only one status: converted or failed")
	statusCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(statusCmd)
}
