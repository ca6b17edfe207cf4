package handler

import (
	"jobseek/internal/pkg/response"
	"jobseek/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatsHandler struct {
	uc usecase.StatsUsecase
}

func NewStatsHandler(uc usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/count", h.HandleCount)
	r.Get("/overview", h.HandleOverview)
}

func (h *StatsHandler) HandleCount(c fiber.Ctx) error {
	st, err := h.uc.Count(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", st)
}

func (h *StatsHandler) HandleOverview(c fiber.Ctx) error {
	ov, err := h.uc.Overview(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", ov)
}

type HealthHandler struct {
	uc usecase.StatsUsecase
}

func NewHealthHandler(uc usecase.StatsUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	st := h.uc.Health(c.Context())
	if !st.DatabaseHealthy {
		return response.Success(c, fiber.StatusServiceUnavailable, "degraded", st)
	}
	return response.Success(c, fiber.StatusOK, "", st)
}
