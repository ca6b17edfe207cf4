package searchindex

import (
	"context"
	"fmt"
	"math"

	"jobseek/internal/domain/job"
)

// Query is a filtered, sorted page request against the index.
// A nil Filter matches every document.
type Query struct {
	Filter    *Criteria `json:"filter,omitempty"`
	Page      int       `json:"page"`
	Size      int       `json:"size"`
	SortField string    `json:"sortField"`
	Desc      bool      `json:"desc"`
}

type Result struct {
	Documents []job.Document
	Total     int64
}

// Index is the search-side document store.
type Index interface {
	Upsert(ctx context.Context, doc job.Document) error
	// BulkUpsert writes all docs or none.
	BulkUpsert(ctx context.Context, docs []job.Document) error
	Search(ctx context.Context, q Query) (Result, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

func checkQuery(q Query) error {
	if q.Page < 0 {
		return fmt.Errorf("invalid page %d", q.Page)
	}
	if q.Size <= 0 {
		return fmt.Errorf("invalid size %d", q.Size)
	}
	if !SortableFields[q.SortField] {
		return fmt.Errorf("unsupported sort field %q", q.SortField)
	}
	if q.Filter != nil {
		return Validate(*q.Filter)
	}
	return nil
}

// offset returns the first row of the requested page. ok is false when the
// page lies past any representable row, which can only be an empty page.
func offset(q Query) (n int, ok bool) {
	if q.Page > math.MaxInt/q.Size {
		return 0, false
	}
	return q.Page * q.Size, true
}
