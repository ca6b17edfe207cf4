package searchindex

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"jobseek/internal/domain/job"
)

// MemoryIndex keeps documents in a map. Suitable for tests and local runs.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs map[string]job.Document
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: map[string]job.Document{}}
}

func (m *MemoryIndex) Upsert(ctx context.Context, doc job.Document) error {
	return m.BulkUpsert(ctx, []job.Document{doc})
}

func (m *MemoryIndex) BulkUpsert(_ context.Context, docs []job.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return nil
}

func (m *MemoryIndex) Search(_ context.Context, q Query) (Result, error) {
	if err := checkQuery(q); err != nil {
		return Result{}, err
	}

	m.mu.RLock()
	matched := make([]job.Document, 0, len(m.docs))
	for _, d := range m.docs {
		if q.Filter == nil || matches(*q.Filter, d) {
			matched = append(matched, d)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(matched, func(a, b job.Document) int {
		c := compareField(q.SortField, a, b)
		if q.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return compareID(a.ID, b.ID)
	})

	res := Result{Total: int64(len(matched)), Documents: []job.Document{}}
	start, ok := offset(q)
	if !ok || start >= len(matched) {
		return res, nil
	}
	end := start + min(q.Size, len(matched)-start)
	res.Documents = append(res.Documents, matched[start:end]...)
	return res, nil
}

func (m *MemoryIndex) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs)), nil
}

func (m *MemoryIndex) Close() error { return nil }

func matches(c Criteria, d job.Document) bool {
	switch c.Op {
	case OpAnd:
		for _, ch := range c.Children {
			if !matches(ch, d) {
				return false
			}
		}
		return true
	case OpOr:
		for _, ch := range c.Children {
			if matches(ch, d) {
				return true
			}
		}
		return false
	case OpContains:
		return strings.Contains(strings.ToLower(textValue(c.Field, d)), strings.ToLower(c.Value.(string)))
	case OpIs:
		if b, ok := c.Value.(bool); ok {
			return d.IsActive == b
		}
		return textValue(c.Field, d) == c.Value.(string)
	case OpIn:
		want := c.Value.([]string)
		if c.Field == FieldSkills {
			for _, s := range d.Skills {
				if slices.Contains(want, s) {
					return true
				}
			}
			return false
		}
		return slices.Contains(want, textValue(c.Field, d))
	case OpGTE, OpLTE:
		v := numberValue(c.Field, d)
		if v == nil {
			return false
		}
		if c.Op == OpGTE {
			return *v >= c.Value.(int)
		}
		return *v <= c.Value.(int)
	}
	return false
}

func textValue(field string, d job.Document) string {
	switch field {
	case FieldTitle:
		return d.Title
	case FieldCompany:
		return d.Company
	case FieldDescription:
		return d.Description
	case FieldLocation:
		return d.Location
	case FieldExperienceLevel:
		return d.ExperienceLevel
	}
	return ""
}

func numberValue(field string, d job.Document) *int {
	switch field {
	case FieldMinSalary:
		return d.MinSalary
	case FieldMaxSalary:
		return d.MaxSalary
	}
	return nil
}

// compareField orders nulls and false before any value.
func compareField(field string, a, b job.Document) int {
	switch field {
	case FieldID:
		return compareID(a.ID, b.ID)
	case FieldMinSalary, FieldMaxSalary:
		return compareNullable(numberValue(field, a), numberValue(field, b))
	case FieldPostedDate:
		return a.PostedDate.Compare(b.PostedDate)
	case FieldIsActive:
		return cmp.Compare(boolRank(a.IsActive), boolRank(b.IsActive))
	default:
		return cmp.Compare(textValue(field, a), textValue(field, b))
	}
}

func compareNullable(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

func compareID(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(ai, bi)
	}
	return cmp.Compare(a, b)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
