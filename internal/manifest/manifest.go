// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records every conversion in a SQLite database so later
// batch runs can skip HTML sources whose content has not changed.
package manifest

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manual-convert/pkg/types"
)

// Store manages the conversion manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	// Batch workers share one connection; SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source TEXT PRIMARY KEY,
			dest TEXT NOT NULL,
			source_hash TEXT,
			settings TEXT,
			status TEXT NOT NULL,
			error TEXT,
			bytes INTEGER,
			converted_at TEXT,
			headings INTEGER,
			tables INTEGER,
			fenced_blocks INTEGER,
			indented_blocks INTEGER,
			links INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return s.addColumn("settings", "TEXT")
}

// addColumn adds a column to manifests created before it existed.
func (s *Store) addColumn(name, typ string) error {
	rows, err := s.db.Query(`PRAGMA table_info(conversions)`)
	if err != nil {
		return fmt.Errorf("reading conversions columns: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid              int
			col, colType     string
			notNull, primary int
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &col, &colType, &notNull, &dflt, &primary); err != nil {
			return fmt.Errorf("reading conversions columns: %w", err)
		}
		if col == name {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading conversions columns: %w", err)
	}
	rows.Close()

	if _, err := s.db.Exec(`ALTER TABLE conversions ADD COLUMN ` + name + ` ` + typ); err != nil {
		return fmt.Errorf("adding column %s: %w", name, err)
	}
	return nil
}

// Hash returns the hex SHA-256 of the file at path.
func (s *Store) Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

const selectColumns = `SELECT source, dest, source_hash, settings, status, error, bytes, converted_at,
	headings, tables, fenced_blocks, indented_blocks, links FROM conversions`

// Lookup returns the latest recorded result for source. The boolean is false
// when source has never been recorded.
func (s *Store) Lookup(ctx context.Context, source string) (types.Result, bool, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE source = ?`, source)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Result{}, false, nil
	}
	if err != nil {
		return types.Result{}, false, fmt.Errorf("looking up %s: %w", source, err)
	}
	return res, true, nil
}

// Record stores res as the latest result for its source, replacing any
// earlier record.
func (s *Store) Record(ctx context.Context, res types.Result) error {
	var convertedAt string
	if !res.ConvertedAt.IsZero() {
		convertedAt = res.ConvertedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, dest, source_hash, settings, status, error, bytes, converted_at,
			headings, tables, fenced_blocks, indented_blocks, links)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			dest=excluded.dest, source_hash=excluded.source_hash, settings=excluded.settings,
			status=excluded.status,
			error=excluded.error, bytes=excluded.bytes, converted_at=excluded.converted_at,
			headings=excluded.headings, tables=excluded.tables,
			fenced_blocks=excluded.fenced_blocks, indented_blocks=excluded.indented_blocks,
			links=excluded.links`,
		res.Source, res.Dest, res.SourceHash, res.Settings, string(res.Status), res.Error, res.Bytes, convertedAt,
		res.Stats.Headings, res.Stats.Tables, res.Stats.FencedBlocks, res.Stats.IndentedBlocks, res.Stats.Links,
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", res.Source, err)
	}
	return nil
}

// ListOptions filter List results.
type ListOptions struct {
	// Status limits results to one conversion status when non-empty.
	Status types.ConversionStatus
}

// List returns recorded results ordered by source path.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Result, error) {
	query := selectColumns
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY source`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var results []types.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (types.Result, error) {
	var (
		res                    types.Result
		hash, settings         sql.NullString
		errMsg, convTime       sql.NullString
		bytes                  sql.NullInt64
		status                 string
	)
	err := sc.Scan(&res.Source, &res.Dest, &hash, &settings, &status, &errMsg, &bytes, &convTime,
		&res.Stats.Headings, &res.Stats.Tables, &res.Stats.FencedBlocks,
		&res.Stats.IndentedBlocks, &res.Stats.Links)
	if err != nil {
		return types.Result{}, err
	}
	res.Status = types.ConversionStatus(status)
	res.SourceHash = hash.String
	res.Settings = settings.String
	res.Error = errMsg.String
	res.Bytes = int(bytes.Int64)
	if convTime.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, convTime.String); err == nil {
			res.ConvertedAt = t
		}
	}
	return res, nil
}
