package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/org-directory/internal/pkg/utils"
	"github.com/org-directory/internal/usecase"
)

// FillerHandler - наполнение базы демонстрационными данными
type FillerHandler struct {
	fillerUC *usecase.FillerUseCase
	logger   *zap.Logger
}

func NewFillerHandler(fillerUC *usecase.FillerUseCase, logger *zap.Logger) *FillerHandler {
	return &FillerHandler{
		fillerUC: fillerUC,
		logger:   logger,
	}
}

// Fill - заполнить базу демонстрационными данными
// @Summary Заполнить базу демо-данными
// @Description Создаёт дерево видов деятельности Food/Cars, два телефона, здание и организацию "Horns and hooves".
// @Tags Filler
// @Security ApiKeyAuth
// @Success 204
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/filler/fill [post]
func (h *FillerHandler) Fill(c *fiber.Ctx) error {
	if err := h.fillerUC.Fill(c.UserContext()); err != nil {
		return sendError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
