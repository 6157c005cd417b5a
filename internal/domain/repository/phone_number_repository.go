package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

// PhoneNumberRepository определяет методы для работы с телефонными номерами
type PhoneNumberRepository interface {
	GetAll(ctx context.Context, page domain.Pagination) ([]domain.PhoneNumber, error)

	// GetByID возвращает номер или nil, если его нет
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error)

	// GetByIDs возвращает найденные номера; отсутствующие id пропускаются
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PhoneNumber, error)

	Create(ctx context.Context, phone *domain.PhoneNumber) error

	Update(ctx context.Context, phone *domain.PhoneNumber) (bool, error)

	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}
