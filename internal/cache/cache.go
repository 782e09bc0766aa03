// Package cache is the language server's per-document incremental analysis
// cache (spec.md §5, "the language-server front-end owns multiple
// documents and parsers keyed by URI"). Re-analyzing a document whose text
// hasn't changed since the last request is wasted CPU; this package keys a
// sqlite-backed store on (URI, content hash) so a document revisited at
// the same version is served from cache instead of re-walked. Grounded on
// the teacher's internal/db package (database/sql against a sqlite
// driver, PRAGMA setup, CREATE TABLE IF NOT EXISTS schema, exec-with-retry
// around "database is locked"), swapped from mattn/go-sqlite3 (cgo) to
// modernc.org/sqlite (the pure-Go driver the rest of the pack's sqlite
// consumers prefer) since this front end has no other reason to require
// cgo.
package cache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores the last-known diagnostics for a document, keyed by its URI
// and a hash of its text.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) a sqlite-backed cache at path. Pass
// ":memory:" for an ephemeral, process-local cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) Close() error { return c.db.Close() }

func (c *Cache) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		uri TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		diagnostics_json TEXT NOT NULL,
		analyzed_at INTEGER NOT NULL
	);
	`
	_, err := c.execWithRetry(schema)
	return err
}

// execWithRetry makes up to three attempts, 20ms apart, while the error
// reports "database is locked", the same transient
// sqlite condition the teacher's internal/db helpers guard against under
// concurrent writers (spec.md §5: distinct documents may be analyzed in
// parallel, so concurrent cache writes are expected, not exceptional).
func (c *Cache) execWithRetry(query string, args ...interface{}) (sql.Result, error) {
	var (
		res sql.Result
		err error
	)
	for i := 0; i < 3; i++ {
		res, err = c.db.Exec(query, args...)
		if err == nil {
			return res, nil
		}
		if !strings.Contains(err.Error(), "locked") {
			return nil, err
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil, fmt.Errorf("exec: database is locked after retries: %w", err)
}

// Get returns the cached diagnostics JSON for uri if its stored content
// hash matches hash, and reports whether a valid entry was found.
func (c *Cache) Get(uri, hash string) (diagnosticsJSON string, ok bool, err error) {
	row := c.db.QueryRow(`SELECT diagnostics_json FROM documents WHERE uri = ? AND content_hash = ?`, uri, hash)
	if scanErr := row.Scan(&diagnosticsJSON); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("querying cache: %w", scanErr)
	}
	return diagnosticsJSON, true, nil
}

// Put records the analysis result for uri at the given content hash,
// stamped with a caller-supplied unix timestamp (the core never calls
// time.Now() itself, per spec.md §5's "no in-flight cancellation /
// timeouts are not defined" — timestamps are the LSP boundary's concern).
func (c *Cache) Put(uri, hash, diagnosticsJSON string, analyzedAt int64) error {
	_, err := c.execWithRetry(
		`INSERT INTO documents (uri, content_hash, diagnostics_json, analyzed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(uri) DO UPDATE SET content_hash = excluded.content_hash,
		   diagnostics_json = excluded.diagnostics_json, analyzed_at = excluded.analyzed_at`,
		uri, hash, diagnosticsJSON, analyzedAt,
	)
	return err
}

// Invalidate drops the cached entry for uri; the language server calls it
// when a document is closed.
func (c *Cache) Invalidate(uri string) error {
	_, err := c.execWithRetry(`DELETE FROM documents WHERE uri = ?`, uri)
	return err
}
