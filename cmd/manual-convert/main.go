// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manual-convert CLI.
// It converts HTML manual pages into normalized GitHub-flavored Markdown.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/pdiddy/manual-convert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the manual-convert CLI.
var rootCmd = &cobra.Command{
	Use:   "manual-convert",
	Short: "Convert HTML manuals into normalized Markdown",
	Long: `manual-convert turns HTML documentation pages into GitHub-flavored
Markdown. A converter backend (pandoc, pandoc in a container, or a native Go
converter) produces raw Markdown, which is then normalized: summary tables are
rewritten into two-column Field/Details tables, indented code becomes fenced
code, blank-line runs are capped, and a fixed set of escapes is replaced with
HTML entities.

Use batch to convert the configured manual tree, convert for a single page,
and normalize to run only the post-processing step.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setMaxProcs(verbose)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manual-convert.yaml or ~/.config/manual-convert/manual-convert.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log runtime tuning and worker counts to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manual-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manual-convert"))
		}
	}

	setDefaults(viper.GetViper())
	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment overrides and
// Unmarshal see it even when no config file exists.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("targets.html_root", d.Targets.HTMLRoot)
	v.SetDefault("targets.markdown_root", d.Targets.MarkdownRoot)
	v.SetDefault("targets.directories", d.Targets.Directories)

	extra := make([]map[string]any, 0, len(d.Targets.Extra))
	for _, m := range d.Targets.Extra {
		extra = append(extra, map[string]any{"source": m.Source, "dest": m.Dest})
	}
	v.SetDefault("targets.extra", extra)

	v.SetDefault("converter.backend", string(d.Converter.Backend))
	v.SetDefault("converter.pandoc_path", d.Converter.PandocPath)
	v.SetDefault("converter.lua_filter", d.Converter.LuaFilter)
	v.SetDefault("converter.image", d.Converter.Image)
	v.SetDefault("converter.timeout", d.Converter.Timeout)

	v.SetDefault("workers", d.Workers)
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("force", d.Force)
	v.SetDefault("frontmatter", d.Frontmatter)
	v.SetDefault("report", d.Report)
}

// configureEnv maps MANUAL_CONVERT_CONVERTER_BACKEND style variables onto
// nested keys.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("MANUAL_CONVERT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes the merged flag, env, file, and default settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// bindFlags ties the named viper keys to flags of cmd. Binding happens at run
// time so commands sharing a key do not overwrite each other's binding.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// maxprocs.Set only fails on an invalid GOMAXPROCS variable, in which case the
// runtime default stays in effect.
func setMaxProcs(verbose bool) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
