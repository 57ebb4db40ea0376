// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns HTML pages into normalized GitHub-flavored Markdown.
// A pluggable Converter produces raw Markdown (pandoc, pandoc in a container,
// or an in-process converter); the result is run through the postprocess
// pipeline and written to its destination.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/manual-convert/internal/inspect"
	"github.com/pdiddy/manual-convert/internal/postprocess"
	"github.com/pdiddy/manual-convert/pkg/types"
)

// Converter transforms an HTML file into raw Markdown. Different backends
// (pandoc, containerized pandoc, native) implement this interface.
type Converter interface {
	// Convert reads the HTML at htmlPath and returns the raw Markdown.
	Convert(ctx context.Context, htmlPath string) (string, error)
}

var (
	// ErrUnknownBackend is returned for a backend name no converter serves.
	ErrUnknownBackend = errors.New("unknown converter backend")
	// ErrEmptyInput is returned when a source path is empty.
	ErrEmptyInput = errors.New("source path cannot be empty")
)

// InvocationError reports a failed converter run. Stderr holds whatever the
// converter printed before failing.
type InvocationError struct {
	Backend string
	Source  string
	Stderr  string
	Err     error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s conversion of %s failed: %v", e.Backend, e.Source, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *InvocationError) Unwrap() error { return e.Err }

// WriteError reports a failure to create or write the destination file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Options tune a single-file conversion.
type Options struct {
	// Frontmatter prepends a YAML block with the page title and source.
	Frontmatter bool
	// Now stamps converted_at; defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

// File converts job.Source with c, normalizes the output, and writes it to
// job.Dest, creating parent directories as needed. The returned Result is
// filled in on success and on failure; the error is an *InvocationError or
// a *WriteError.
func File(ctx context.Context, c Converter, job types.Job, opts Options) (types.Result, error) {
	res := types.Result{Job: job, Status: types.ConversionFailed}
	if job.Source == "" {
		res.Error = ErrEmptyInput.Error()
		return res, ErrEmptyInput
	}

	raw, err := c.Convert(ctx, job.Source)
	if err != nil {
		res.Error = err.Error()
		return res, err
	}

	content := postprocess.Process(raw)
	res.Stats = inspect.Inspect(content)
	res.ConvertedAt = opts.now()

	if opts.Frontmatter {
		content, err = addFrontmatter(job.Source, content, res.ConvertedAt)
		if err != nil {
			res.Error = err.Error()
			return res, err
		}
	}

	if err := writeFile(job.Dest, content); err != nil {
		res.Error = err.Error()
		return res, err
	}

	res.Status = types.ConversionDone
	res.Bytes = len(content)
	return res, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
