package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/utils"
	"github.com/org-directory/internal/pkg/validator"
	"github.com/org-directory/internal/usecase"
	"github.com/org-directory/internal/usecase/dto"
)

// ActivityHandler - обработчик запросов к дереву видов деятельности
type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
	logger     *zap.Logger
}

func NewActivityHandler(activityUC *usecase.ActivityUseCase, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUC: activityUC,
		logger:     logger,
	}
}

func parseDepth(c *fiber.Ctx) (*int, error) {
	var q dto.DepthQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, errors.Validation("depth: must be an integer")
	}
	if err := validator.Validate(&q); err != nil {
		return nil, err
	}
	return q.Depth, nil
}

// GetAll - список видов деятельности
// @Summary Список видов деятельности
// @Description Каждый элемент раскрыт до depth уровней; depth ограничен настройкой ACTIVITIES_DEPTH.
// @Tags Activities
// @Produce json
// @Security ApiKeyAuth
// @Param depth query int false "Глубина раскрытия"
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Activity}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/activities [get]
func (h *ActivityHandler) GetAll(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}
	depth, err := parseDepth(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	activities, err := h.activityUC.GetAll(c.UserContext(), page, depth)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, activities, pageMeta(len(activities), page))
}

// GetByID - вид деятельности с поддеревом
// @Summary Получить вид деятельности
// @Tags Activities
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID вида деятельности"
// @Param depth query int false "Глубина раскрытия"
// @Success 200 {object} utils.SuccessResponse{data=domain.Activity}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/activities/{id} [get]
func (h *ActivityHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}
	depth, err := parseDepth(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	activity, err := h.activityUC.GetByID(c.UserContext(), id, depth)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, activity, nil)
}

// Descendants - id вида деятельности и всех вложенных
// @Summary Вложенные виды деятельности
// @Tags Activities
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID вида деятельности"
// @Param depth query int false "Глубина обхода"
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/activities/{id}/descendants [get]
func (h *ActivityHandler) Descendants(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}
	depth, err := parseDepth(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	ids, err := h.activityUC.Descendants(c.UserContext(), id, depth)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, ids, &utils.Meta{Total: len(ids)})
}

// Create - создание вида деятельности
// @Summary Создать вид деятельности
// @Tags Activities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateActivityRequest true "Вид деятельности"
// @Success 201 {object} utils.SuccessResponse{data=domain.Activity}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	activity, err := h.activityUC.Create(c.UserContext(), req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendCreated(c, activity)
}

// Update - изменение вида деятельности
// @Summary Изменить вид деятельности
// @Tags Activities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID вида деятельности"
// @Param request body dto.UpdateActivityRequest true "Вид деятельности"
// @Success 200 {object} utils.SuccessResponse{data=domain.Activity}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/activities/{id} [put]
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var req dto.UpdateActivityRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	activity, err := h.activityUC.Update(c.UserContext(), id, req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, activity, nil)
}

// Delete - удаление вида деятельности
// @Summary Удалить вид деятельности
// @Description Дочерние виды деятельности становятся корневыми.
// @Tags Activities
// @Security ApiKeyAuth
// @Param id path string true "ID вида деятельности"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/activities/{id} [delete]
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	if err := h.activityUC.Delete(c.UserContext(), id); err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendNoContent(c)
}
