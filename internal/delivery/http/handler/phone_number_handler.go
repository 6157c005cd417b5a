package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/org-directory/internal/pkg/utils"
	"github.com/org-directory/internal/usecase"
	"github.com/org-directory/internal/usecase/dto"
)

// PhoneNumberHandler - обработчик запросов к телефонным номерам
type PhoneNumberHandler struct {
	phoneUC *usecase.PhoneNumberUseCase
	logger  *zap.Logger
}

func NewPhoneNumberHandler(phoneUC *usecase.PhoneNumberUseCase, logger *zap.Logger) *PhoneNumberHandler {
	return &PhoneNumberHandler{
		phoneUC: phoneUC,
		logger:  logger,
	}
}

// GetAll - список телефонов
// @Summary Список телефонов
// @Tags PhoneNumbers
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.PhoneNumber}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/phone-numbers [get]
func (h *PhoneNumberHandler) GetAll(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	phones, err := h.phoneUC.GetAll(c.UserContext(), page)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, phones, pageMeta(len(phones), page))
}

// GetByID - получение телефона
// @Summary Получить телефон
// @Tags PhoneNumbers
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID телефона"
// @Success 200 {object} utils.SuccessResponse{data=domain.PhoneNumber}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/phone-numbers/{id} [get]
func (h *PhoneNumberHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	phone, err := h.phoneUC.GetByID(c.UserContext(), id)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, phone, nil)
}

// Create - создание телефона
// @Summary Создать телефон
// @Tags PhoneNumbers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreatePhoneNumberRequest true "Телефон"
// @Success 201 {object} utils.SuccessResponse{data=domain.PhoneNumber}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/phone-numbers [post]
func (h *PhoneNumberHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePhoneNumberRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	phone, err := h.phoneUC.Create(c.UserContext(), req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendCreated(c, phone)
}

// Update - изменение телефона
// @Summary Изменить телефон
// @Tags PhoneNumbers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID телефона"
// @Param request body dto.UpdatePhoneNumberRequest true "Телефон"
// @Success 200 {object} utils.SuccessResponse{data=domain.PhoneNumber}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/phone-numbers/{id} [put]
func (h *PhoneNumberHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var req dto.UpdatePhoneNumberRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, h.logger, err)
	}

	phone, err := h.phoneUC.Update(c.UserContext(), id, req)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, phone, nil)
}

// Delete - удаление телефона
// @Summary Удалить телефон
// @Tags PhoneNumbers
// @Security ApiKeyAuth
// @Param id path string true "ID телефона"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/phone-numbers/{id} [delete]
func (h *PhoneNumberHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	if err := h.phoneUC.Delete(c.UserContext(), id); err != nil {
		return sendError(c, h.logger, err)
	}

	return utils.SendNoContent(c)
}
