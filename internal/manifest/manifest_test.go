package manifest

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/manual-convert/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "manifest.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(source string, status types.ConversionStatus) types.Result {
	return types.Result{
		Job:         types.Job{Source: source, Dest: source + ".md"},
		Status:      status,
		SourceHash:  "abc123",
		Settings:    "f00d",
		Bytes:       42,
		Stats:       types.DocumentStats{Headings: 2, Tables: 1, FencedBlocks: 3, Links: 4},
		ConvertedAt: time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
	}
}

// --- tests ---

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "manifest.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestRecordAndLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, ok, err := s.Lookup(ctx, "a.html"); err != nil || ok {
		t.Fatalf("Lookup on empty manifest = (%v, %v), want (false, nil)", ok, err)
	}

	want := sampleResult("a.html", types.ConversionDone)
	if err := s.Record(ctx, want); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, ok, err := s.Lookup(ctx, "a.html")
	if err != nil || !ok {
		t.Fatalf("Lookup = (%v, %v)", ok, err)
	}
	if got.Dest != want.Dest || got.SourceHash != want.SourceHash || got.Status != want.Status || got.Settings != want.Settings {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Stats != want.Stats {
		t.Errorf("stats = %+v, want %+v", got.Stats, want.Stats)
	}
	if got.Bytes != 42 {
		t.Errorf("bytes = %d, want 42", got.Bytes)
	}
	if !got.ConvertedAt.Equal(want.ConvertedAt) {
		t.Errorf("converted_at = %v, want %v", got.ConvertedAt, want.ConvertedAt)
	}
}

func TestRecord_ReplacesPrevious(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, sampleResult("a.html", types.ConversionDone)); err != nil {
		t.Fatal(err)
	}
	failed := types.Result{
		Job:    types.Job{Source: "a.html", Dest: "a.md"},
		Status: types.ConversionFailed,
		Error:  "pandoc conversion of a.html failed: exit status 1",
	}
	if err := s.Record(ctx, failed); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.Lookup(ctx, "a.html")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != types.ConversionFailed || got.Error != failed.Error {
		t.Errorf("got %+v, want failed record", got)
	}
	if !got.ConvertedAt.IsZero() {
		t.Errorf("converted_at should be zero for a failed record, got %v", got.ConvertedAt)
	}
	if got.Stats != (types.DocumentStats{}) {
		t.Errorf("stats should be reset, got %+v", got.Stats)
	}
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, r := range []types.Result{
		sampleResult("c.html", types.ConversionDone),
		sampleResult("a.html", types.ConversionFailed),
		sampleResult("b.html", types.ConversionDone),
	} {
		if err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, want := range []string{"a.html", "b.html", "c.html"} {
		if all[i].Source != want {
			t.Errorf("all[%d] = %s, want %s", i, all[i].Source, want)
		}
	}

	failed, err := s.List(ctx, ListOptions{Status: types.ConversionFailed})
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || failed[0].Source != "a.html" {
		t.Errorf("failed = %+v, want only a.html", failed)
	}
}

func TestHash(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(t.TempDir(), "page.html")
	content := []byte("<p>hello</p>")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Hash(path)
	if err != nil {
		t.Fatal(err)
	}
	sum := sha256.Sum256(content)
	if want := hex.EncodeToString(sum[:]); got != want {
		t.Errorf("hash = %s, want %s", got, want)
	}

	if _, err := s.Hash(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, sampleResult("a.html", types.ConversionDone)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok, err := s.Lookup(ctx, "a.html"); err != nil || !ok {
		t.Errorf("record should survive reopen: ok=%v err=%v", ok, err)
	}
}

func TestOpen_AddsSettingsToOlderManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE conversions (
		source TEXT PRIMARY KEY, dest TEXT NOT NULL, source_hash TEXT,
		status TEXT NOT NULL, error TEXT, bytes INTEGER, converted_at TEXT,
		headings INTEGER, tables INTEGER, fenced_blocks INTEGER,
		indented_blocks INTEGER, links INTEGER)`)
	if err == nil {
		_, err = db.Exec(`INSERT INTO conversions (source, dest, source_hash, status)
			VALUES ('old.html', 'old.md', 'abc', 'converted')`)
	}
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open on older manifest: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	old, ok, err := s.Lookup(ctx, "old.html")
	if err != nil || !ok {
		t.Fatalf("Lookup = (%v, %v)", ok, err)
	}
	if old.Settings != "" {
		t.Errorf("settings of a pre-existing record = %q, want empty", old.Settings)
	}

	if err := s.Record(ctx, sampleResult("new.html", types.ConversionDone)); err != nil {
		t.Fatalf("Record after migration: %v", err)
	}
	got, _, err := s.Lookup(ctx, "new.html")
	if err != nil {
		t.Fatal(err)
	}
	if got.Settings != "f00d" {
		t.Errorf("settings = %q, want %q", got.Settings, "f00d")
	}

	s.Close()
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening migrated manifest: %v", err)
	}
	reopened.Close()
}
