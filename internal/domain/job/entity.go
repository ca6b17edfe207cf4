package job

import (
	"strconv"
	"time"
)

const (
	LevelEntry  = "Entry"
	LevelMid    = "Mid"
	LevelSenior = "Senior"
	LevelLead   = "Lead"
)

// Job is the system-of-record posting stored in the primary store.
type Job struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Description     string    `json:"description,omitempty"`
	Skills          []string  `json:"skills"`
	Location        string    `json:"location,omitempty"`
	JobURL          string    `json:"jobUrl,omitempty"`
	MinSalary       *int      `json:"minSalary"`
	MaxSalary       *int      `json:"maxSalary"`
	ExperienceLevel string    `json:"experienceLevel"`
	PostedDate      time.Time `json:"postedDate"`
	IsActive        bool      `json:"isActive"`
}

// Document is the search-index projection of a Job. It is rebuildable from
// the primary store at any time.
type Document struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Description     string    `json:"description,omitempty"`
	Skills          []string  `json:"skills"`
	Location        string    `json:"location,omitempty"`
	MinSalary       *int      `json:"minSalary"`
	MaxSalary       *int      `json:"maxSalary"`
	ExperienceLevel string    `json:"experienceLevel"`
	PostedDate      time.Time `json:"postedDate"`
	IsActive        bool      `json:"isActive"`
}

// ToDocument maps a Job field-for-field onto its index projection.
func ToDocument(j Job) Document {
	skills := make([]string, len(j.Skills))
	copy(skills, j.Skills)
	return Document{
		ID:              strconv.FormatInt(j.ID, 10),
		Title:           j.Title,
		Company:         j.Company,
		Description:     j.Description,
		Skills:          skills,
		Location:        j.Location,
		MinSalary:       copyInt(j.MinSalary),
		MaxSalary:       copyInt(j.MaxSalary),
		ExperienceLevel: j.ExperienceLevel,
		PostedDate:      j.PostedDate,
		IsActive:        j.IsActive,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
