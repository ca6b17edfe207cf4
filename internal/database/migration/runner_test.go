package migration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"jobseek/migrations"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_index.sql":         {Data: []byte("CREATE INDEX x ON jobs (id);")},
		"V1__create_jobs.sql":       {Data: []byte("  CREATE TABLE jobs (id BIGSERIAL);\n")},
		"README.md":                 {Data: []byte("notes")},
		"V3_missing_underscore.sql": {Data: []byte("SELECT 1;")},
	}

	migs, err := Runner{FS: fsys}.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "create_jobs" || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %+v", migs)
	}
	if strings.HasPrefix(migs[0].SQL, " ") || migs[0].Checksum == "" {
		t.Fatalf("expected trimmed sql and checksum: %+v", migs[0])
	}
}

func TestLoad_RejectsDuplicatesAndEmptyFiles(t *testing.T) {
	_, err := Runner{FS: fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}}.Load()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = Runner{FS: fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}}.Load()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoad_MissingDirIsNotAnError(t *testing.T) {
	migs, err := Runner{Dir: t.TempDir() + "/absent"}.Load()
	if err != nil || len(migs) != 0 {
		t.Fatalf("expected no migrations, got %v %v", migs, err)
	}
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	migs, err := Runner{FS: migrations.FS}.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 || !strings.Contains(migs[0].SQL, "CREATE TABLE") {
		t.Fatalf("expected embedded V1 schema, got %+v", migs)
	}
}

func TestLoad_DirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "V7__local.sql"), []byte("SELECT 7;"), 0o600); err != nil {
		t.Fatal(err)
	}
	migs, err := Runner{Dir: dir, FS: migrations.FS}.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 1 || migs[0].Version != 7 {
		t.Fatalf("expected only the directory file, got %+v", migs)
	}
}

func TestPending(t *testing.T) {
	migs, err := Runner{FS: fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V2__b.sql": {Data: []byte("SELECT 2;")},
		"V3__c.sql": {Data: []byte("SELECT 3;")},
	}}.Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	pending, err := Pending(migs, map[int64]string{1: migs[0].Checksum})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pending) != 2 || pending[0].Version != 2 || pending[1].Version != 3 {
		t.Fatalf("unexpected pending: %+v", pending)
	}

	_, err = Pending(migs, map[int64]string{2: "edited"})
	var mismatch *ChecksumMismatchError
	if !errors.As(err, &mismatch) || mismatch.Version != 2 {
		t.Fatalf("expected checksum mismatch for v2, got %v", err)
	}
}

func TestRun_NilDB(t *testing.T) {
	if _, err := (Runner{FS: migrations.FS}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
