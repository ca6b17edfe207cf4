package search

import (
	"jobseek/internal/domain/job"
	"jobseek/internal/searchindex"
)

const (
	DefaultPage      = 0
	DefaultSize      = 20
	DefaultSortBy    = searchindex.FieldPostedDate
	DefaultSortOrder = "desc"
)

// Request is a structured job search. Every filter is optional; a zero
// value means no constraint.
type Request struct {
	Keyword         string   `json:"keyword,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Location        string   `json:"location,omitempty"`
	MinSalary       *int     `json:"minSalary,omitempty"`
	MaxSalary       *int     `json:"maxSalary,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`

	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// NewRequest returns a request with default paging and sorting.
func NewRequest() Request {
	return Request{
		Page:      DefaultPage,
		Size:      DefaultSize,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}
}

type Response struct {
	Results      []job.Document `json:"results"`
	TotalResults int64          `json:"totalResults"`
	CurrentPage  int            `json:"currentPage"`
	TotalPages   int            `json:"totalPages"`
	PageSize     int            `json:"pageSize"`
	SearchTimeMs int64          `json:"searchTimeMs"`
	FromCache    bool           `json:"fromCache"`
}

// TotalPages is ceil(total/size). size must be positive.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
