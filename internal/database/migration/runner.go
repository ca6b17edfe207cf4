// Package migration brings the primary store schema up to date at startup.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const advisoryLockKey int64 = 746295114

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Migration is one versioned schema file.
type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// ChecksumMismatchError means an applied file was edited afterwards.
type ChecksumMismatchError struct {
	Version int64
	Name    string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("migration checksum mismatch: version=%d name=%s", e.Version, e.Name)
}

// Runner applies V<n>__<name>.sql files in version order, once each, under
// a Postgres advisory lock so concurrent replicas do not race. Files come
// from Dir when set, otherwise from FS.
type Runner struct {
	Dir    string
	FS     fs.FS
	Logger *log.Logger
}

func (r Runner) source() fs.FS {
	if dir := strings.TrimSpace(r.Dir); dir != "" {
		return os.DirFS(dir)
	}
	return r.FS
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// Run applies every pending migration and returns how many were applied.
func (r Runner) Run(ctx context.Context, db *sql.DB) (int, error) {
	if db == nil {
		return 0, errors.New("nil db")
	}

	migs, err := r.Load()
	if err != nil {
		return 0, err
	}
	if len(migs) == 0 {
		r.logf("[Migration] no schema files found")
		return 0, nil
	}

	if _, err := db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		return 0, fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey)
	}()

	applied, err := appliedChecksums(ctx, db)
	if err != nil {
		return 0, err
	}
	pending, err := Pending(migs, applied)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		r.logf("[Migration] schema up to date version=%d", migs[len(migs)-1].Version)
		return 0, nil
	}

	for _, m := range pending {
		start := time.Now()
		if err := apply(ctx, db, m); err != nil {
			return 0, err
		}
		r.logf("[Migration] applied version=%d name=%s duration=%s", m.Version, m.Name, time.Since(start))
	}
	return len(pending), nil
}

// Pending returns the migrations not yet recorded in applied, in order. A
// recorded version whose checksum differs is an error.
func Pending(migs []Migration, applied map[int64]string) ([]Migration, error) {
	out := make([]Migration, 0, len(migs))
	for _, m := range migs {
		sum, ok := applied[m.Version]
		if !ok {
			out = append(out, m)
			continue
		}
		if sum != m.Checksum {
			return nil, &ChecksumMismatchError{Version: m.Version, Name: m.Name}
		}
	}
	return out, nil
}

// Load reads and orders the schema files without touching a database. A
// missing source yields no migrations.
func (r Runner) Load() ([]Migration, error) {
	fsys := r.source()
	if fsys == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m, ok, err := parseFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			migs = append(migs, m)
		}
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}
	return migs, nil
}

func parseFile(fsys fs.FS, name string) (Migration, bool, error) {
	match := fileRe.FindStringSubmatch(name)
	if match == nil {
		return Migration{}, false, nil
	}
	v, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Migration{}, false, fmt.Errorf("invalid migration version: %s", name)
	}

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Migration{}, false, err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return Migration{}, false, fmt.Errorf("empty migration file: %s", name)
	}

	sum := sha256.Sum256([]byte(text))
	return Migration{
		Version:  v,
		Name:     match[2],
		Filename: name,
		SQL:      text,
		Checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    BIGINT PRIMARY KEY,
	name       TEXT NOT NULL,
	checksum   TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func appliedChecksums(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var c string
		if err := rows.Scan(&v, &c); err != nil {
			return nil, err
		}
		out[v] = c
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	return tx.Commit()
}
