package search

import (
	"fmt"
	"strings"

	"jobseek/internal/searchindex"
)

// QueryError reports a request that cannot be turned into an index query.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Build maps a request onto an index query.
//
// Keyword expands to a case-insensitive contains over title, company and
// description joined by OR. Every other present filter is ANDed with it.
// Salary bounds test overlap: the requested minimum constrains the
// posting's maxSalary and the requested maximum constrains its minSalary.
func Build(req Request) (searchindex.Query, error) {
	var clauses []searchindex.Criteria

	if kw := strings.TrimSpace(req.Keyword); kw != "" {
		clauses = append(clauses, searchindex.Or(
			searchindex.Contains(searchindex.FieldTitle, kw),
			searchindex.Contains(searchindex.FieldCompany, kw),
			searchindex.Contains(searchindex.FieldDescription, kw),
		))
	}
	if skills := nonEmpty(req.Skills); len(skills) > 0 {
		clauses = append(clauses, searchindex.In(searchindex.FieldSkills, skills))
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		clauses = append(clauses, searchindex.Is(searchindex.FieldLocation, loc))
	}
	if req.MinSalary != nil {
		clauses = append(clauses, searchindex.GTE(searchindex.FieldMaxSalary, *req.MinSalary))
	}
	if req.MaxSalary != nil {
		clauses = append(clauses, searchindex.LTE(searchindex.FieldMinSalary, *req.MaxSalary))
	}
	if lvl := strings.TrimSpace(req.ExperienceLevel); lvl != "" {
		clauses = append(clauses, searchindex.Is(searchindex.FieldExperienceLevel, lvl))
	}
	if req.IsActive != nil {
		clauses = append(clauses, searchindex.Is(searchindex.FieldIsActive, *req.IsActive))
	}

	sortBy := strings.TrimSpace(req.SortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if !searchindex.SortableFields[sortBy] {
		return searchindex.Query{}, &QueryError{Op: "sort", Err: fmt.Errorf("unsupported sort field %q", sortBy)}
	}

	q := searchindex.Query{
		Page:      req.Page,
		Size:      req.Size,
		SortField: sortBy,
		Desc:      !strings.EqualFold(strings.TrimSpace(req.SortOrder), "asc"),
	}
	switch len(clauses) {
	case 0:
	case 1:
		q.Filter = &clauses[0]
	default:
		all := searchindex.And(clauses...)
		q.Filter = &all
	}
	return q, nil
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
