package seeder

import (
	"context"
	"fmt"
	"time"

	"jobseek/internal/database"
	"jobseek/internal/domain/job"
	"jobseek/internal/enrich"
	"jobseek/internal/extract"
	"jobseek/internal/repository"
)

// SampleJobsSeeder loads a handful of postings into an empty jobs table so
// a fresh install has something to sync and search. A table that already
// holds rows is left alone.
type SampleJobsSeeder struct {
	Now func() time.Time
}

func (SampleJobsSeeder) Name() string { return "sample_jobs" }

func (s SampleJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "title", "company", "description", "skills", "location", "job_url",
		"min_salary", "max_salary", "experience_level", "posted_date", "is_active",
	); err != nil {
		return err
	}

	repo := repository.NewPostgresJobRepository(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if n > 0 {
		return nil
	}

	jobs, err := s.jobs()
	if err != nil {
		return err
	}
	if _, err := repo.SaveAll(ctx, jobs); err != nil {
		return fmt.Errorf("save sample jobs: %w", err)
	}
	return nil
}

func (s SampleJobsSeeder) jobs() ([]job.Job, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	ex := extract.NewExtractor(now)

	out := make([]job.Job, 0, len(sampleJobs))
	for i, rec := range sampleJobs {
		f, err := ex.Extract(rec)
		if err != nil {
			return nil, fmt.Errorf("sample job %d: %w", i, err)
		}
		out = append(out, enrich.Enrich(f))
	}
	return out, nil
}

var sampleJobs = []extract.MapRecord{
	{
		extract.ColTitle:           "Backend Engineer",
		extract.ColCompany:         "Acme Corp",
		extract.ColDescription:     "Build payment APIs in Go backed by PostgreSQL and Redis.",
		extract.ColLocation:        "Remote",
		extract.ColPostingURL:      "https://jobs.example.com/acme/backend",
		extract.ColMinSalary:       "90000",
		extract.ColMaxSalary:       "130000",
		extract.ColSkillsDesc:      "Go, PostgreSQL, Redis, Docker",
		extract.ColExperienceLevel: "Mid-Senior level",
		extract.ColListedTime:      "1713398400000",
	},
	{
		extract.ColTitle:           "Frontend Developer",
		extract.ColCompany:         "Globex",
		extract.ColDescription:     "Requirements: React, TypeScript, accessibility testing.",
		extract.ColLocation:        "Berlin, Germany",
		extract.ColMinSalary:       "60000",
		extract.ColMaxSalary:       "80000",
		extract.ColExperienceLevel: "Associate",
		extract.ColListedTime:      "1713484800000",
	},
	{
		extract.ColTitle:           "Data Engineer Intern",
		extract.ColCompany:         "Initech",
		extract.ColDescription:     "Help maintain our Python and SQL data pipelines on AWS.",
		extract.ColLocation:        "Austin, TX",
		extract.ColSkillsDesc:      "Python; SQL; AWS",
		extract.ColExperienceLevel: "Internship",
		extract.ColListedTime:      "1713571200000",
	},
	{
		extract.ColTitle:           "Engineering Manager",
		extract.ColCompany:         "Umbrella",
		extract.ColDescription:     "Lead a team shipping Kubernetes tooling.",
		extract.ColLocation:        "London, UK",
		extract.ColMinSalary:       "150000",
		extract.ColSkillsDesc:      "Kubernetes | Leadership | Hiring",
		extract.ColExperienceLevel: "Director",
		extract.ColListedTime:      "1713657600000",
	},
	{
		extract.ColTitle:       "Site Reliability Engineer",
		extract.ColCompany:     "Hooli",
		extract.ColDescription: "Experience with Linux, Terraform and on-call rotations.",
		extract.ColLocation:    "Remote",
		extract.ColMaxSalary:   "140000",
		extract.ColSkillsDesc:  "Linux, Terraform",
		extract.ColListedTime:  "1713744000000",
		extract.ColClosedTime:  "1714348800000",
	},
}
