package handler

import (
	"strconv"
	"strings"

	"jobseek/internal/pkg/response"
	"jobseek/internal/search"
	"jobseek/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	uc usecase.JobSearchUsecase
}

func NewSearchHandler(uc usecase.JobSearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/search", h.HandleSearch)
	r.Post("/clear-cache", h.HandleClearCache)
}

func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	req, err := parseSearchRequest(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Search(c.Context(), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageSearchCompleted, res)
}

func (h *SearchHandler) HandleClearCache(c fiber.Ctx) error {
	if err := h.uc.ClearCache(c.Context()); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageCacheCleared, nil)
}

func parseSearchRequest(c fiber.Ctx) (search.Request, error) {
	req := search.NewRequest()
	req.Keyword = strings.TrimSpace(c.Query("keyword"))
	req.Skills = parseSkillsQuery(c.Query("skills"))
	req.Location = strings.TrimSpace(c.Query("location"))
	req.ExperienceLevel = strings.TrimSpace(c.Query("experienceLevel"))

	var err error
	if req.MinSalary, err = parseOptionalInt(c, "minSalary"); err != nil {
		return req, err
	}
	if req.MaxSalary, err = parseOptionalInt(c, "maxSalary"); err != nil {
		return req, err
	}
	if s := c.Query("isActive"); s != "" {
		v, perr := strconv.ParseBool(s)
		if perr != nil {
			return req, badRequest("invalid isActive", perr)
		}
		req.IsActive = &v
	}
	if req.Page, err = parseQueryIntStrict(c, "page", search.DefaultPage); err != nil {
		return req, err
	}
	if req.Size, err = parseQueryIntStrict(c, "size", search.DefaultSize); err != nil {
		return req, err
	}
	if s := strings.TrimSpace(c.Query("sortBy")); s != "" {
		req.SortBy = s
	}
	if s := strings.TrimSpace(c.Query("sortOrder")); s != "" {
		req.SortOrder = s
	}
	return req, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, badRequest("invalid "+key, err)
	}
	return v, nil
}

func parseOptionalInt(c fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, badRequest("invalid "+key, err)
	}
	return &v, nil
}

func parseSkillsQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
