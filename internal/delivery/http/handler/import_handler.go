package handler

import (
	"strings"

	"jobseek/internal/pkg/response"
	"jobseek/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ImportHandler struct {
	uc usecase.ImportUsecase
}

func NewImportHandler(uc usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/csv", h.HandleImportCSV)
}

// HandleImportCSV imports the multipart "file" field and answers once every
// row has been processed.
func (h *ImportHandler) HandleImportCSV(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return badRequest("Please upload a file", err)
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return badRequest("Only CSV files are allowed", nil)
	}

	f, err := fh.Open()
	if err != nil {
		return mapUsecaseError(err)
	}
	defer f.Close()

	res := h.uc.ImportCSV(c.Context(), f)
	return response.Success(c, fiber.StatusOK, response.MessageImportCompleted, res)
}
