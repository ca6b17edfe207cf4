package enrich

import (
	"jobseek/internal/domain/job"
	"jobseek/internal/extract"
)

// Enrich turns extracted fields into a Job candidate with derived skills and
// a normalised experience level. The ID is left for the store to assign.
func Enrich(f extract.Fields) job.Job {
	return job.Job{
		Title:           f.Title,
		Company:         f.Company,
		Description:     f.Description,
		Skills:          ExtractSkills(f.SkillsDesc, f.Description),
		Location:        f.Location,
		JobURL:          f.JobURL,
		MinSalary:       f.MinSalary,
		MaxSalary:       f.MaxSalary,
		ExperienceLevel: ExperienceLevel(f.ExperienceRaw),
		PostedDate:      f.PostedDate,
		IsActive:        f.IsActive,
	}
}
