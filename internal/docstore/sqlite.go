// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

// SQLiteSource keeps documents as JSON text in a single table and filters
// them with json_extract.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the
// documents table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store requires a path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		body TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Find returns documents matching f in insertion order.
func (s *SQLiteSource) Find(ctx context.Context, f Filter) (Cursor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE json_extract(body, ?) = ? ORDER BY id`,
		jsonPath(f.Path), f.Value,
	)
	if err != nil {
		return nil, fmt.Errorf("querying documents (%s): %w", f, err)
	}
	return &sqliteCursor{rows: rows}, nil
}

// Insert stores each document as one JSON row.
func (s *SQLiteSource) Insert(ctx context.Context, docs []types.Document) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents (body) VALUES (?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range docs {
		body, err := json.Marshal(d)
		if err != nil {
			return 0, fmt.Errorf("encoding document %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, string(body)); err != nil {
			return 0, fmt.Errorf("inserting document %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing documents: %w", err)
	}
	return len(docs), nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close(context.Context) error {
	return s.db.Close()
}

// jsonPath turns "a.b.c" into the SQLite JSON path `$."a"."b"."c"`.
func jsonPath(dotted string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, key := range strings.Split(dotted, ".") {
		b.WriteString(`."`)
		b.WriteString(strings.ReplaceAll(key, `"`, `\"`))
		b.WriteString(`"`)
	}
	return b.String()
}

type sqliteCursor struct {
	rows *sql.Rows
	id   int64
	body string
	err  error
}

func (c *sqliteCursor) Next(context.Context) bool {
	if !c.rows.Next() {
		return false
	}
	c.err = c.rows.Scan(&c.id, &c.body)
	return true
}

func (c *sqliteCursor) Decode() (types.Document, error) {
	if c.err != nil {
		return nil, fmt.Errorf("scanning row: %w", c.err)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(c.body)))
	dec.UseNumber()
	var doc types.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document %d: %w", c.id, err)
	}
	return doc, nil
}

func (c *sqliteCursor) Err() error { return c.rows.Err() }
func (c *sqliteCursor) Close(context.Context) error { return c.rows.Close() }
