// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/pdiddy/manual-convert/pkg/types"
)

// Manifest remembers earlier conversions so unchanged sources can be skipped.
type Manifest interface {
	// Hash returns the content hash of the file at path.
	Hash(path string) (string, error)
	// Lookup returns the last recorded result for source.
	Lookup(ctx context.Context, source string) (types.Result, bool, error)
	// Record stores res as the latest result for its source.
	Record(ctx context.Context, res types.Result) error
}

// BatchOptions tune a batch run.
type BatchOptions struct {
	Options

	// Workers bounds concurrent conversions; see ResolveWorkers.
	Workers int
	// Manifest enables incremental runs when non-nil.
	Manifest Manifest
	// Force converts every job even when the manifest says it is unchanged.
	Force bool
	// Settings fingerprints the converter configuration; see
	// SettingsFingerprint. Options.Frontmatter is folded in by Batch.
	Settings string
}

// fingerprint combines the converter settings with the per-file options that
// change the written output.
func (o BatchOptions) fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "settings=%s\nfrontmatter=%t\n", o.Settings, o.Frontmatter)
	return hex.EncodeToString(h.Sum(nil))
}

// SettingsFingerprint hashes every converter setting that affects output:
// backend, pandoc binary, image, and the Lua filter path and contents. A
// missing filter is fingerprinted as absent so creating it later counts as a
// change.
func SettingsFingerprint(cfg types.ConverterConfig) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "backend=%s\npandoc=%s\nimage=%s\nfilter=%s\n",
		cfg.Backend, cfg.PandocPath, cfg.Image, cfg.LuaFilter)
	if cfg.LuaFilter != "" {
		data, err := os.ReadFile(cfg.LuaFilter)
		switch {
		case err == nil:
			fmt.Fprintf(h, "filter-sha256=%x\n", sha256.Sum256(data))
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintln(h, "filter-sha256=absent")
		default:
			return "", fmt.Errorf("reading lua filter %s: %w", cfg.LuaFilter, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ResolveWorkers picks the pool size. An explicit count wins; otherwise half
// of GOMAXPROCS, clamped to [1, 8].
func ResolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	n = runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// Batch converts jobs concurrently, printing a status line per file to w as
// each one finishes and a summary at the end. A failed job does not stop the
// others. Results are returned in job order.
func Batch(ctx context.Context, c Converter, jobs []types.Job, opts BatchOptions, w io.Writer) types.BatchResult {
	results := make([]types.Result, len(jobs))
	out := &syncWriter{w: w}

	settings := opts.fingerprint()
	p := pool.New().WithMaxGoroutines(ResolveWorkers(opts.Workers))
	for i, job := range jobs {
		p.Go(func() {
			results[i] = runJob(ctx, c, job, settings, opts, out)
		})
	}
	p.Wait()

	var batch types.BatchResult
	for _, r := range results {
		batch.Add(r)
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		batch.Converted, batch.Skipped, batch.Failed, batch.Total())
	return batch
}

func runJob(ctx context.Context, c Converter, job types.Job, settings string, opts BatchOptions, w io.Writer) types.Result {
	if err := ctx.Err(); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", job.Source, err)
		return types.Result{Job: job, Status: types.ConversionFailed, Error: err.Error()}
	}

	var hash string
	if opts.Manifest != nil {
		h, err := opts.Manifest.Hash(job.Source)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", job.Source, err)
			return types.Result{Job: job, Status: types.ConversionFailed, Error: err.Error()}
		}
		hash = h
		if !opts.Force && unchanged(ctx, opts.Manifest, job, hash, settings) {
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", job.Source)
			return types.Result{Job: job, Status: types.ConversionSkipped, SourceHash: hash, Settings: settings}
		}
	}

	res, err := File(ctx, c, job, opts.Options)
	res.SourceHash = hash
	res.Settings = settings
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", job.Source, err)
	} else {
		fmt.Fprintf(w, "converted: %s -> %s\n", job.Source, job.Dest)
	}

	if opts.Manifest != nil {
		if err := opts.Manifest.Record(ctx, res); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record %s in manifest: %v\n", job.Source, err)
		}
	}
	return res
}

// unchanged reports whether the manifest holds a successful conversion of the
// same source content into the same destination under the same settings, and
// that file still exists.
func unchanged(ctx context.Context, m Manifest, job types.Job, hash, settings string) bool {
	prev, ok, err := m.Lookup(ctx, job.Source)
	if err != nil || !ok {
		return false
	}
	if prev.Status != types.ConversionDone || prev.SourceHash != hash || prev.Dest != job.Dest || prev.Settings != settings {
		return false
	}
	_, err = os.Stat(job.Dest)
	return err == nil
}

// syncWriter serializes status lines written by concurrent workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
