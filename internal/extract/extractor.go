package extract

import (
	"strconv"
	"strings"
	"time"
)

// Source column names.
const (
	ColTitle              = "title"
	ColCompany            = "company_name"
	ColDescription        = "description"
	ColLocation           = "location"
	ColPostingURL         = "job_posting_url"
	ColApplicationURL     = "application_url"
	ColMinSalary          = "min_salary"
	ColMaxSalary          = "max_salary"
	ColSkillsDesc         = "skills_desc"
	ColExperienceLevel    = "formatted_experience_level"
	ColListedTime         = "listed_time"
	ColOriginalListedTime = "original_listed_time"
	ColClosedTime         = "closed_time"
)

// Fields is the typed, validated view of one raw record. Skills and the
// experience level are derived later from SkillsDesc, Description and
// ExperienceRaw.
type Fields struct {
	Title         string
	Company       string
	Description   string
	Location      string
	JobURL        string
	MinSalary     *int
	MaxSalary     *int
	SkillsDesc    string
	ExperienceRaw string
	PostedDate    time.Time
	IsActive      bool
}

type Extractor struct {
	now func() time.Time
}

// NewExtractor returns an Extractor whose fallback timestamp comes from now.
// A nil now uses time.Now.
func NewExtractor(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{now: now}
}

// Extract maps one record to Fields, or fails with *ValidationError when a
// mandatory column is missing.
func (e *Extractor) Extract(r Record) (Fields, error) {
	f := Fields{
		Title:         field(r, ColTitle),
		Company:       field(r, ColCompany),
		Description:   field(r, ColDescription),
		Location:      field(r, ColLocation),
		JobURL:        firstNonEmpty(field(r, ColPostingURL), field(r, ColApplicationURL)),
		MinSalary:     ParseInt(field(r, ColMinSalary)),
		MaxSalary:     ParseInt(field(r, ColMaxSalary)),
		SkillsDesc:    field(r, ColSkillsDesc),
		ExperienceRaw: field(r, ColExperienceLevel),
		IsActive:      field(r, ColClosedTime) == "",
	}

	if f.Title == "" {
		return Fields{}, missing("title", "title")
	}
	if f.Company == "" {
		return Fields{}, missing("company", "company")
	}

	listed := firstNonEmpty(field(r, ColListedTime), field(r, ColOriginalListedTime))
	if listed == "" {
		f.PostedDate = e.now()
	} else {
		f.PostedDate = ParseTimestamp(listed, e.now)
	}
	return f, nil
}

// ParseInt keeps digits and minus signs and parses what is left. Anything
// unparsable is nil, never an error.
func ParseInt(raw string) *int {
	if raw == "" {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, raw)
	n, err := strconv.ParseInt(cleaned, 10, 32)
	if err != nil {
		return nil
	}
	v := int(n)
	return &v
}

func field(r Record, column string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Get(column))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
