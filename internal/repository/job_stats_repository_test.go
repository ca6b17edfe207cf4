package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"jobseek/internal/database"
	"jobseek/internal/domain/job"
)

type levelRow struct {
	level sql.NullString
	total int64
	last  sql.NullTime
}

type levelRows struct {
	rows []levelRow
	i    int
}

func (r *levelRows) Close()     {}
func (r *levelRows) Next() bool { r.i++; return r.i <= len(r.rows) }
func (r *levelRows) Err() error { return nil }
func (r *levelRows) Scan(dest ...any) error {
	row := r.rows[r.i-1]
	*dest[0].(*sql.NullString) = row.level
	*dest[1].(*int64) = row.total
	*dest[2].(*sql.NullTime) = row.last
	return nil
}

// statsDB answers the aggregate queries with canned values and records the
// last statement it saw.
type statsDB struct {
	active    int64
	createdBy func(since time.Time) int64
	levels    []levelRow
	lastQuery string
	lastArgs  []any
}

func (db *statsDB) Ping(context.Context) error { return nil }
func (db *statsDB) Close() error               { return nil }
func (db *statsDB) SQLDB() *sql.DB             { return nil }
func (db *statsDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("no transactions")
}
func (db *statsDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }

func (db *statsDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	db.lastQuery, db.lastArgs = query, args
	return &levelRows{rows: db.levels}, nil
}

func (db *statsDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	db.lastQuery, db.lastArgs = query, args
	if strings.Contains(query, "created_at >=") {
		return fakeRow{vals: []any{db.createdBy(args[0].(time.Time))}}
	}
	return fakeRow{vals: []any{db.active}}
}

func TestJobStats_Counts(t *testing.T) {
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	db := &statsDB{
		active: 7,
		createdBy: func(s time.Time) int64 {
			if !s.Equal(since) {
				return -1
			}
			return 3
		},
	}
	repo := NewPostgresJobStatsRepository(db)

	active, err := repo.CountActive(context.Background())
	if err != nil || active != 7 {
		t.Fatalf("expected 7 active, got %d err=%v", active, err)
	}
	if !strings.Contains(db.lastQuery, "is_active = TRUE") {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}

	today, err := repo.CountCreatedSince(context.Background(), since)
	if err != nil || today != 3 {
		t.Fatalf("expected 3 created, got %d err=%v", today, err)
	}
}

func TestJobStats_LevelStats(t *testing.T) {
	last := time.Date(2024, 4, 20, 8, 0, 0, 0, time.FixedZone("x", 3600))
	db := &statsDB{levels: []levelRow{
		{level: sql.NullString{String: job.LevelSenior, Valid: true}, total: 4, last: sql.NullTime{Time: last, Valid: true}},
		{level: sql.NullString{}, total: 1},
	}}

	got, err := NewPostgresJobStatsRepository(db).LevelStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Level != job.LevelSenior || got[0].TotalJobs != 4 || !got[0].LastPostedDate.Equal(last) {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[0].LastPostedDate.Location() != time.UTC {
		t.Fatalf("expected UTC timestamps")
	}
	if got[1].Level != job.LevelMid || !got[1].LastPostedDate.IsZero() {
		t.Fatalf("null level should read as Mid with zero date: %+v", got[1])
	}
}

func TestJobStats_NilDB(t *testing.T) {
	var repo *PostgresJobStatsRepository
	if _, err := repo.CountActive(context.Background()); !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB, got %v", err)
	}
}
