package searchindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobseek/internal/domain/job"

	_ "modernc.org/sqlite"
)

// SQLiteIndex stores documents in a SQLite file. Skills are kept as a JSON
// array and matched with json_each.
type SQLiteIndex struct {
	db *sql.DB
}

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS job_documents (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	company          TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	skills           TEXT NOT NULL DEFAULT '[]',
	location         TEXT NOT NULL DEFAULT '',
	min_salary       INTEGER,
	max_salary       INTEGER,
	experience_level TEXT NOT NULL DEFAULT '',
	posted_date      INTEGER NOT NULL,
	is_active        INTEGER NOT NULL
)`

const upsertDocumentSQL = `INSERT INTO job_documents
	(id, title, company, description, skills, location, min_salary, max_salary, experience_level, posted_date, is_active)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		company = excluded.company,
		description = excluded.description,
		skills = excluded.skills,
		location = excluded.location,
		min_salary = excluded.min_salary,
		max_salary = excluded.max_salary,
		experience_level = excluded.experience_level,
		posted_date = excluded.posted_date,
		is_active = excluded.is_active`

var sqliteColumns = map[string]string{
	FieldID:              "CAST(id AS INTEGER)",
	FieldTitle:           "title",
	FieldCompany:         "company",
	FieldDescription:     "description",
	FieldLocation:        "location",
	FieldMinSalary:       "min_salary",
	FieldMaxSalary:       "max_salary",
	FieldExperienceLevel: "experience_level",
	FieldPostedDate:      "posted_date",
	FieldIsActive:        "is_active",
}

// NewSQLiteIndex opens (or creates) the index database at path and ensures
// the documents table exists.
func NewSQLiteIndex(path string) (*SQLiteIndex, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating index dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite index: %w", err)
	}
	// One connection keeps writers serialized and makes ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite index: %w", err)
	}
	if _, err := db.Exec(createDocumentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating job_documents table: %w", err)
	}
	return &SQLiteIndex{db: db}, nil
}

func (s *SQLiteIndex) Upsert(ctx context.Context, doc job.Document) error {
	return s.BulkUpsert(ctx, []job.Document{doc})
}

func (s *SQLiteIndex) BulkUpsert(ctx context.Context, docs []job.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, upsertDocumentSQL)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		skills := d.Skills
		if skills == nil {
			skills = []string{}
		}
		skillsJSON, err := json.Marshal(skills)
		if err != nil {
			return fmt.Errorf("encoding skills for %s: %w", d.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			d.ID, d.Title, d.Company, d.Description, string(skillsJSON), d.Location,
			nullInt(d.MinSalary), nullInt(d.MaxSalary), d.ExperienceLevel,
			d.PostedDate.UnixNano(), boolInt(d.IsActive),
		)
		if err != nil {
			return fmt.Errorf("upserting document %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteIndex) Search(ctx context.Context, q Query) (Result, error) {
	if err := checkQuery(q); err != nil {
		return Result{}, err
	}

	where := "1=1"
	var args []any
	if q.Filter != nil {
		w := &sqlWriter{}
		w.render(*q.Filter)
		where, args = w.sb.String(), w.args
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_documents WHERE `+where, args...).Scan(&total); err != nil {
		return Result{}, fmt.Errorf("counting matches: %w", err)
	}

	res := Result{Documents: []job.Document{}, Total: total}
	skip, ok := offset(q)
	if !ok {
		return res, nil
	}

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT id, title, company, description, skills, location, min_salary, max_salary,
		experience_level, posted_date, is_active
		FROM job_documents WHERE %s
		ORDER BY %s %s, CAST(id AS INTEGER) ASC, id ASC
		LIMIT ? OFFSET ?`, where, sqliteColumns[q.SortField], dir)
	pageArgs := append(append([]any{}, args...), q.Size, skip)

	rows, err := s.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return Result{}, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return Result{}, err
		}
		res.Documents = append(res.Documents, d)
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *SQLiteIndex) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

func scanDocument(rows *sql.Rows) (job.Document, error) {
	var (
		d          job.Document
		skillsJSON string
		minSalary  sql.NullInt64
		maxSalary  sql.NullInt64
		posted     int64
		active     int64
	)
	if err := rows.Scan(&d.ID, &d.Title, &d.Company, &d.Description, &skillsJSON, &d.Location,
		&minSalary, &maxSalary, &d.ExperienceLevel, &posted, &active); err != nil {
		return job.Document{}, fmt.Errorf("scanning document: %w", err)
	}
	if err := json.Unmarshal([]byte(skillsJSON), &d.Skills); err != nil {
		return job.Document{}, fmt.Errorf("decoding skills for %s: %w", d.ID, err)
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	d.MinSalary = intPtr(minSalary)
	d.MaxSalary = intPtr(maxSalary)
	d.PostedDate = time.Unix(0, posted).UTC()
	d.IsActive = active != 0
	return d, nil
}

// sqlWriter renders a validated criteria tree into a WHERE clause.
type sqlWriter struct {
	sb   strings.Builder
	args []any
}

func (w *sqlWriter) render(c Criteria) {
	switch c.Op {
	case OpAnd, OpOr:
		if len(c.Children) == 0 {
			if c.Op == OpAnd {
				w.sb.WriteString("1=1")
			} else {
				w.sb.WriteString("1=0")
			}
			return
		}
		join := " AND "
		if c.Op == OpOr {
			join = " OR "
		}
		w.sb.WriteString("(")
		for i, ch := range c.Children {
			if i > 0 {
				w.sb.WriteString(join)
			}
			w.render(ch)
		}
		w.sb.WriteString(")")
	case OpContains:
		w.sb.WriteString("instr(lower(" + sqliteColumns[c.Field] + "), lower(?)) > 0")
		w.args = append(w.args, c.Value)
	case OpIs:
		col := sqliteColumns[c.Field]
		if b, ok := c.Value.(bool); ok {
			w.sb.WriteString(col + " = ?")
			w.args = append(w.args, boolInt(b))
			return
		}
		w.sb.WriteString(col + " = ?")
		w.args = append(w.args, c.Value)
	case OpIn:
		values := c.Value.([]string)
		if len(values) == 0 {
			w.sb.WriteString("1=0")
			return
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		if c.Field == FieldSkills {
			w.sb.WriteString("EXISTS (SELECT 1 FROM json_each(job_documents.skills) WHERE json_each.value IN (" + marks + "))")
		} else {
			w.sb.WriteString(sqliteColumns[c.Field] + " IN (" + marks + ")")
		}
		for _, v := range values {
			w.args = append(w.args, v)
		}
	case OpGTE, OpLTE:
		col := sqliteColumns[c.Field]
		op := ">="
		if c.Op == OpLTE {
			op = "<="
		}
		w.sb.WriteString("(" + col + " IS NOT NULL AND " + col + " " + op + " ?)")
		w.args = append(w.args, c.Value)
	}
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
