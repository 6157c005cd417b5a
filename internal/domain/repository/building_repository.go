package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

// BuildingRepository определяет методы для работы со зданиями
type BuildingRepository interface {
	GetAll(ctx context.Context, page domain.Pagination) ([]domain.Building, error)

	// GetByID возвращает здание или nil, если его нет
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)

	Create(ctx context.Context, building *domain.Building) error

	Update(ctx context.Context, building *domain.Building) (bool, error)

	// DeleteByID удаляет здание вместе с его организациями
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}
