package dto

import (
	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/pkg/errors"
)

// PaginationQuery - параметры limit/offset из query string
type PaginationQuery struct {
	Limit  *int `query:"limit"`
	Offset *int `query:"offset"`
}

// ToPagination applies defaults for absent values and rejects out-of-range
// ones.
func (q PaginationQuery) ToPagination() (domain.Pagination, error) {
	page := domain.DefaultPagination()
	if q.Limit != nil {
		page.Limit = *q.Limit
	}
	if q.Offset != nil {
		page.Offset = *q.Offset
	}
	if !page.Valid() {
		return page, errors.ErrInvalidPagination
	}
	return page, nil
}

// IDsRequest - тело запросов привязки/отвязки
type IDsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required"`
}

// ParseID parses a path or query identifier into a validation error when
// malformed.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Validation(field + ": must be a valid UUID").WithDetails(map[string]interface{}{
			field: raw,
		})
	}
	return id, nil
}
