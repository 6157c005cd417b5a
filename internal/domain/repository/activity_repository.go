package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

// ActivityRepository определяет методы для работы с деревом видов деятельности.
// Возвращаемые узлы не содержат Children, раскрытием дерева занимается ActivityTree.
type ActivityRepository interface {
	// GetAll возвращает страницу активностей, упорядоченных по id
	GetAll(ctx context.Context, page domain.Pagination) ([]domain.Activity, error)

	// GetByID возвращает активность или nil, если её нет
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)

	// GetByIDs возвращает найденные активности; отсутствующие id пропускаются
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error)

	// GetChildren возвращает прямых потомков всех переданных родителей одним запросом
	GetChildren(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Activity, error)

	Create(ctx context.Context, activity *domain.Activity) error

	// Update returns false when no row with the id exists.
	Update(ctx context.Context, activity *domain.Activity) (bool, error)

	// DeleteByID returns false when no row with the id exists.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}
