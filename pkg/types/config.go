// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConverterBackend identifies the tool that turns HTML into raw Markdown.
type ConverterBackend string

const (
	// BackendPandoc runs a local pandoc binary.
	BackendPandoc ConverterBackend = "pandoc"
	// BackendContainer runs pandoc inside a docker or podman container.
	BackendContainer ConverterBackend = "container"
	// BackendNative converts in-process without pandoc. Lua filters are not applied.
	BackendNative ConverterBackend = "native"
)

// ConverterConfig holds settings for the HTML-to-Markdown conversion step.
type ConverterConfig struct {
	// Backend selects the conversion tool: pandoc, container, or native.
	Backend ConverterBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PandocPath is the pandoc executable (default "pandoc" on PATH).
	PandocPath string `json:"pandoc_path,omitempty" yaml:"pandoc_path,omitempty" mapstructure:"pandoc_path"`

	// LuaFilter is the pandoc Lua filter applied during conversion.
	LuaFilter string `json:"lua_filter,omitempty" yaml:"lua_filter,omitempty" mapstructure:"lua_filter"`

	// Image is the container image used by the container backend.
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`

	// Timeout bounds a single conversion. Zero means no limit.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// Mapping pairs one HTML source file with its Markdown destination.
type Mapping struct {
	Source string `json:"source" yaml:"source" mapstructure:"source"`
	Dest   string `json:"dest" yaml:"dest" mapstructure:"dest"`
}

// TargetsConfig describes which HTML files a batch converts and where the
// Markdown lands.
type TargetsConfig struct {
	// HTMLRoot is the directory holding the HTML subdirectories.
	HTMLRoot string `json:"html_root" yaml:"html_root" mapstructure:"html_root"`

	// MarkdownRoot mirrors HTMLRoot for the converted output.
	MarkdownRoot string `json:"markdown_root" yaml:"markdown_root" mapstructure:"markdown_root"`

	// Directories lists the subdirectories of HTMLRoot that are walked.
	Directories []string `json:"directories" yaml:"directories" mapstructure:"directories"`

	// Extra lists single files converted outside the mirrored tree.
	Extra []Mapping `json:"extra,omitempty" yaml:"extra,omitempty" mapstructure:"extra"`
}

// Config groups every setting of a conversion run.
type Config struct {
	Targets   TargetsConfig   `json:"targets" yaml:"targets" mapstructure:"targets"`
	Converter ConverterConfig `json:"converter" yaml:"converter" mapstructure:"converter"`

	// Workers is the number of files converted concurrently (0 = auto).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Manifest is the SQLite file tracking previous conversions. Empty
	// disables incremental runs.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`

	// Force converts every file even when the manifest says it is unchanged.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	// Frontmatter prepends a YAML block with the page title and source path.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`

	// Report is the path of the YAML or JSON batch report. Empty disables it.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`
}

// DefaultConfig returns the layout of the documentation manuals tree.
func DefaultConfig() Config {
	return Config{
		Targets: TargetsConfig{
			HTMLRoot:     "docs/manuals/ium_componentref/html",
			MarkdownRoot: "docs/manuals/ium_componentref/markdown",
			Directories:  []string{"components", "attributes", "packages", "releases"},
			Extra: []Mapping{
				{
					Source: "docs/manuals/commandref/html/docbook.html",
					Dest:   "docs/manuals/commandref/markdown/commandref.md",
				},
			},
		},
		Converter: ConverterConfig{
			Backend:    BackendPandoc,
			PandocPath: "pandoc",
			LuaFilter:  "scripts/html_to_md.lua",
			Image:      "pandoc/core:latest",
		},
	}
}
