package handler

import (
	"jobseek/internal/pkg/response"
	"jobseek/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BatchHandler struct {
	uc usecase.SyncUsecase
}

func NewBatchHandler(uc usecase.SyncUsecase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

func (h *BatchHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/sync", h.HandleSync)
	r.Get("/status", h.HandleStatus)
}

// HandleSync runs one sync pass now. A pass already in flight yields 409.
func (h *BatchHandler) HandleSync(c fiber.Ctx) error {
	rep, err := h.uc.Trigger(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageSyncCompleted, rep)
}

func (h *BatchHandler) HandleStatus(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "", h.uc.Status())
}
