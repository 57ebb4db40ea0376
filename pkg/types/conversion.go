// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one HTML file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Job is one HTML file and the Markdown path it is written to.
type Job struct {
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
}

// DocumentStats counts the block structure of a converted document.
type DocumentStats struct {
	Headings       int `json:"headings" yaml:"headings"`
	Tables         int `json:"tables" yaml:"tables"`
	FencedBlocks   int `json:"fenced_blocks" yaml:"fenced_blocks"`
	IndentedBlocks int `json:"indented_blocks" yaml:"indented_blocks"`
	Links          int `json:"links" yaml:"links"`
}

// Result records what happened to one Job.
type Result struct {
	Job `yaml:",inline"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is ConversionFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// SourceHash is the hex SHA-256 of the HTML source, when known.
	SourceHash string `json:"source_hash,omitempty" yaml:"source_hash,omitempty"`

	// Settings fingerprints the conversion settings the output was produced
	// with. A changed fingerprint forces reconversion.
	Settings string `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Bytes is the size of the written Markdown.
	Bytes int `json:"bytes" yaml:"bytes"`

	Stats       DocumentStats `json:"stats" yaml:"stats"`
	ConvertedAt time.Time     `json:"converted_at" yaml:"converted_at"`
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int      `json:"converted" yaml:"converted"`
	Skipped   int      `json:"skipped" yaml:"skipped"`
	Failed    int      `json:"failed" yaml:"failed"`
	Results   []Result `json:"results" yaml:"results"`
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Add counts res and appends it to Results.
func (r *BatchResult) Add(res Result) {
	switch res.Status {
	case ConversionDone:
		r.Converted++
	case ConversionSkipped:
		r.Skipped++
	case ConversionFailed:
		r.Failed++
	}
	r.Results = append(r.Results, res)
}
