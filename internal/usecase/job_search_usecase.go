package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobseek/internal/search"
	"jobseek/internal/searchindex"
)

type JobSearchUsecase interface {
	Search(ctx context.Context, req search.Request) (search.Response, error)
	ClearCache(ctx context.Context) error
}

type indexSearcher interface {
	Search(ctx context.Context, q searchindex.Query) (searchindex.Result, error)
}

type JobSearch struct {
	index  indexSearcher
	cache  SearchCache
	now    func() time.Time
	logger *log.Logger
}

func NewJobSearchUsecase(index indexSearcher, cache SearchCache, logger *log.Logger) *JobSearch {
	if logger == nil {
		logger = log.Default()
	}
	return &JobSearch{index: index, cache: cache, now: time.Now, logger: logger}
}

// Search answers from the cache when an identical request was seen since the
// last clear; otherwise it queries the index and stores the response.
func (u *JobSearch) Search(ctx context.Context, req search.Request) (search.Response, error) {
	if req.Page < 0 || req.Size <= 0 {
		return search.Response{}, ErrInvalidInput
	}

	key := JobsSearchCacheKey(req)
	if u.cache != nil {
		var cached search.Response
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Printf("[Jobs] Cache read error: %v", err)
		}
		if err == nil && hit {
			u.logger.Printf("[Jobs] Cache HIT: %s", key)
			cached.FromCache = true
			return cached, nil
		}
		u.logger.Printf("[Jobs] Cache MISS: %s", key)
	}

	start := u.now()
	q, err := search.Build(req)
	if err != nil {
		return search.Response{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	res, err := u.index.Search(ctx, q)
	if err != nil {
		if errors.Is(err, searchindex.ErrInvalidCriteria) {
			return search.Response{}, fmt.Errorf("%w: %w", ErrInvalidInput, &search.QueryError{Op: "filter", Err: err})
		}
		u.logger.Printf("[Jobs] Search failed: %v", err)
		return search.Response{}, ErrInternal
	}

	resp := search.Response{
		Results:      res.Documents,
		TotalResults: res.Total,
		CurrentPage:  req.Page,
		TotalPages:   search.TotalPages(res.Total, req.Size),
		PageSize:     req.Size,
		SearchTimeMs: u.now().Sub(start).Milliseconds(),
		FromCache:    false,
	}
	u.logger.Printf("[Jobs] Found %d results in %dms", resp.TotalResults, resp.SearchTimeMs)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, resp, 0); err != nil {
			u.logger.Printf("[Jobs] Cache write error: %v", err)
		}
	}
	return resp, nil
}

func (u *JobSearch) ClearCache(ctx context.Context) error {
	if u.cache == nil {
		return nil
	}
	if err := u.cache.Clear(ctx); err != nil {
		u.logger.Printf("[Jobs] Cache clear failed: %v", err)
		return ErrInternal
	}
	u.logger.Printf("[Jobs] Cache cleared")
	return nil
}
