package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/org-directory/internal/pkg/utils"
	"github.com/org-directory/internal/usecase"
	"github.com/org-directory/internal/usecase/dto"
)

// BuildingHandler - обработчик запросов к зданиям
type BuildingHandler struct {
	buildingUC *usecase.BuildingUseCase
	logger     *zap.Logger
}

func NewBuildingHandler(buildingUC *usecase.BuildingUseCase, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{
		buildingUC: buildingUC,
		logger:     logger,
	}
}

// GetAll - список зданий
// @Summary Список зданий
// @Tags Buildings
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Building}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/buildings [get]
func (h *BuildingHandler) GetAll(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	buildings, err := h.buildingUC.GetAll(c.UserContext(), page)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, buildings, pageMeta(len(buildings), page))
}

// GetByID - получение здания
// @Summary Получить здание
// @Tags Buildings
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID здания"
// @Success 200 {object} utils.SuccessResponse{data=domain.Building}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/buildings/{id} [get]
func (h *BuildingHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	building, err := h.buildingUC.GetByID(c.UserContext(), id)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, building, nil)
}

// Create - создание здания
// @Summary Создать здание
// @Tags Buildings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateBuildingRequest true "Здание"
// @Success 201 {object} utils.SuccessResponse{data=domain.Building}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/buildings [post]
func (h *BuildingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBuildingRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	building, err := h.buildingUC.Create(c.UserContext(), req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendCreated(c, building)
}

// Update - изменение здания
// @Summary Изменить здание
// @Tags Buildings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID здания"
// @Param request body dto.UpdateBuildingRequest true "Здание"
// @Success 200 {object} utils.SuccessResponse{data=domain.Building}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/buildings/{id} [put]
func (h *BuildingHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var req dto.UpdateBuildingRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	building, err := h.buildingUC.Update(c.UserContext(), id, req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, building, nil)
}

// Delete - удаление здания вместе с организациями
// @Summary Удалить здание
// @Description Организации, расположенные в здании, удаляются вместе с ним.
// @Tags Buildings
// @Security ApiKeyAuth
// @Param id path string true "ID здания"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	if err := h.buildingUC.Delete(c.UserContext(), id); err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendNoContent(c)
}
