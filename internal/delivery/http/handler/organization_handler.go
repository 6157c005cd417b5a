package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/utils"
	"github.com/org-directory/internal/usecase"
	"github.com/org-directory/internal/usecase/dto"
)

// OrganizationHandler - обработчик запросов к организациям
type OrganizationHandler struct {
	orgUC  *usecase.OrganizationUseCase
	logger *zap.Logger
}

func NewOrganizationHandler(orgUC *usecase.OrganizationUseCase, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgUC:  orgUC,
		logger: logger,
	}
}

// Search - поиск организаций
// @Summary Поиск организаций
// @Description Фильтры комбинируются через AND. activity_id включает вложенные виды деятельности. building_id нельзя сочетать с гео-фильтром.
// @Tags Organizations
// @Produce json
// @Security ApiKeyAuth
// @Param name query string false "Подстрока названия, без учёта регистра"
// @Param building_id query string false "ID здания"
// @Param activity_id query string false "ID вида деятельности"
// @Param geo_kind query string false "radius или bbox" Enums(radius, bbox)
// @Param lat query number false "Широта центра"
// @Param lon query number false "Долгота центра"
// @Param radius_m query number false "Радиус в метрах (до 100000)"
// @Param lat_min query number false "Минимальная широта"
// @Param lat_max query number false "Максимальная широта"
// @Param lon_min query number false "Минимальная долгота"
// @Param lon_max query number false "Максимальная долгота"
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Organization}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/organizations [get]
func (h *OrganizationHandler) Search(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var q dto.SearchOrganizationsQuery
	if err := c.QueryParser(&q); err != nil {
		return sendError(c, h.logger, errors.ErrInvalidRequest)
	}

	req, err := q.ToRequest(page)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	orgs, err := h.orgUC.Search(c.UserContext(), req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, orgs, pageMeta(len(orgs), page))
}

// GetByID - получение организации
// @Summary Получить организацию по ID
// @Tags Organizations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Success 200 {object} utils.SuccessResponse{data=domain.Organization}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	org, err := h.orgUC.GetByID(c.UserContext(), id)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, org, nil)
}

// Create - создание организации
// @Summary Создать организацию
// @Tags Organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateOrganizationRequest true "Организация"
// @Success 201 {object} utils.SuccessResponse{data=domain.Organization}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrganizationRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	org, err := h.orgUC.Create(c.UserContext(), req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendCreated(c, org)
}

// Update - изменение организации
// @Summary Изменить организацию
// @Tags Organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Param request body dto.UpdateOrganizationRequest true "Организация"
// @Success 200 {object} utils.SuccessResponse{data=domain.Organization}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var req dto.UpdateOrganizationRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	org, err := h.orgUC.Update(c.UserContext(), id, req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, org, nil)
}

// Delete - удаление организации
// @Summary Удалить организацию
// @Tags Organizations
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	if err := h.orgUC.Delete(c.UserContext(), id); err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendNoContent(c)
}

// AssignActivities - привязка видов деятельности
// @Summary Привязать виды деятельности
// @Tags Organizations
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Param request body dto.IDsRequest true "ID видов деятельности"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id}/activities [post]
func (h *OrganizationHandler) AssignActivities(c *fiber.Ctx) error {
	return h.associate(c, h.orgUC.AssignActivities)
}

// UnassignActivities - отвязка видов деятельности
// @Summary Отвязать виды деятельности
// @Tags Organizations
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Param request body dto.IDsRequest true "ID видов деятельности"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id}/activities [delete]
func (h *OrganizationHandler) UnassignActivities(c *fiber.Ctx) error {
	return h.associate(c, h.orgUC.UnassignActivities)
}

// AssignPhoneNumbers - привязка телефонов
// @Summary Привязать телефоны
// @Tags Organizations
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Param request body dto.IDsRequest true "ID телефонов"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id}/phone-numbers [post]
func (h *OrganizationHandler) AssignPhoneNumbers(c *fiber.Ctx) error {
	return h.associate(c, h.orgUC.AssignPhoneNumbers)
}

// UnassignPhoneNumbers - отвязка телефонов
// @Summary Отвязать телефоны
// @Tags Organizations
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "ID организации"
// @Param request body dto.IDsRequest true "ID телефонов"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id}/phone-numbers [delete]
func (h *OrganizationHandler) UnassignPhoneNumbers(c *fiber.Ctx) error {
	return h.associate(c, h.orgUC.UnassignPhoneNumbers)
}

func (h *OrganizationHandler) associate(c *fiber.Ctx, op associationFunc) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var req dto.IDsRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	if err := op(c.UserContext(), id, req.IDs); err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendNoContent(c)
}
