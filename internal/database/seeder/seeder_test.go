package seeder

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"jobseek/internal/database"
	"jobseek/internal/domain/job"
)

type columnRows struct {
	cols []string
	i    int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Next() bool { r.i++; return r.i <= len(r.cols) }
func (r *columnRows) Err() error { return nil }
func (r *columnRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.cols[r.i-1]
	return nil
}

type countRow struct{ n int64 }

func (r countRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.n
	return nil
}

// schemaDB reports a fixed column list and job count. Writes fail.
type schemaDB struct {
	cols  []string
	count int64
	began bool
}

func (db *schemaDB) Ping(context.Context) error { return nil }
func (db *schemaDB) Close() error               { return nil }
func (db *schemaDB) SQLDB() *sql.DB             { return nil }
func (db *schemaDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("read only")
}
func (db *schemaDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return &columnRows{cols: db.cols}, nil
}
func (db *schemaDB) QueryRow(context.Context, string, ...any) database.Row {
	return countRow{n: db.count}
}
func (db *schemaDB) Begin(context.Context) (database.Tx, error) {
	db.began = true
	return nil, errors.New("read only")
}

var jobColumns = []string{
	"id", "title", "company", "description", "skills", "location", "job_url",
	"min_salary", "max_salary", "experience_level", "posted_date", "is_active",
}

func TestSampleJobs_AreEnriched(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs, err := SampleJobsSeeder{Now: func() time.Time { return fixed }}.jobs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != len(sampleJobs) {
		t.Fatalf("expected %d jobs, got %d", len(sampleJobs), len(jobs))
	}

	first := jobs[0]
	if first.Company != "Acme Corp" || first.ExperienceLevel != job.LevelSenior {
		t.Fatalf("unexpected first job: %+v", first)
	}
	if len(first.Skills) != 4 || first.Skills[0] != "Go" {
		t.Fatalf("expected explicit skills, got %v", first.Skills)
	}
	if first.MinSalary == nil || *first.MinSalary != 90000 {
		t.Fatalf("expected min salary 90000, got %v", first.MinSalary)
	}
	if !first.IsActive {
		t.Fatalf("expected first job active")
	}

	last := jobs[len(jobs)-1]
	if last.IsActive {
		t.Fatalf("expected closed posting to be inactive")
	}
	if last.MinSalary != nil {
		t.Fatalf("expected nil min salary, got %v", *last.MinSalary)
	}
	for _, j := range jobs {
		if j.ID != 0 {
			t.Fatalf("ids are assigned by the store, got %d", j.ID)
		}
		if len(j.Skills) == 0 {
			t.Fatalf("expected derived skills for %q", j.Title)
		}
	}
}

func TestRunner_NilDB(t *testing.T) {
	err := Runner{Seeders: Defaults()}.Run(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestEnsureTableColumns(t *testing.T) {
	ctx := context.Background()
	if err := EnsureTableColumns(ctx, nil, "jobs"); err == nil {
		t.Fatalf("expected nil db error")
	}

	db := &schemaDB{cols: []string{"id", "title"}}
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := EnsureTableColumns(ctx, db, "jobs", "id", ""); err == nil {
		t.Fatalf("expected empty column error")
	}

	err := EnsureTableColumns(ctx, db, "jobs", "id", "company", "skills")
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SchemaMismatchError, got %v", err)
	}
	if mismatch.Table != "jobs" || len(mismatch.Missing) != 2 || mismatch.Missing[0] != "company" || mismatch.Missing[1] != "skills" {
		t.Fatalf("unexpected mismatch: %+v", mismatch)
	}
}

func TestSampleJobsSeeder_SkipsPopulatedTable(t *testing.T) {
	db := &schemaDB{cols: jobColumns, count: 3}
	if err := (SampleJobsSeeder{}).Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.began {
		t.Fatalf("populated table must not be written")
	}
}

func TestSampleJobsSeeder_EmptyTableWrites(t *testing.T) {
	db := &schemaDB{cols: jobColumns}
	err := Runner{Seeders: Defaults()}.Run(context.Background(), db)
	if err == nil || !db.began {
		t.Fatalf("expected a write attempt that fails on the read-only db, got %v", err)
	}
}
