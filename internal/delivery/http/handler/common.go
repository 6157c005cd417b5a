package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/utils"
	"github.com/org-directory/internal/pkg/validator"
	"github.com/org-directory/internal/usecase/dto"
)

type associationFunc func(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error

// sendError logs errors of unknown kind before replying; their text never
// reaches the client.
func sendError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	if errors.KindOf(err) == errors.KindUnknown {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return utils.SendError(c, err)
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return dto.ParseID("id", c.Params("id"))
}

func parsePagination(c *fiber.Ctx) (domain.Pagination, error) {
	var q dto.PaginationQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.Pagination{}, errors.ErrInvalidPagination
	}
	return q.ToPagination()
}

// parseBody decodes and validates a JSON body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "malformed JSON",
		})
	}
	return validator.Validate(out)
}

func pageMeta(total int, page domain.Pagination) *utils.Meta {
	return &utils.Meta{
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
