package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/org-directory/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// statusByKind - соответствие вида ошибки и HTTP-статуса
var statusByKind = map[errors.Kind]int{
	errors.KindNotFound:     fiber.StatusNotFound,
	errors.KindValidation:   fiber.StatusUnprocessableEntity,
	errors.KindConflict:     fiber.StatusConflict,
	errors.KindUnauthorized: fiber.StatusUnauthorized,
	errors.KindUnknown:      fiber.StatusInternalServerError,
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind errors.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{Data: data})
}

func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError writes the error envelope. Errors that are not *AppError never
// reach the client verbatim.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(StatusFor(appErr.Kind)).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
