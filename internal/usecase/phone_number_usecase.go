package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/usecase/dto"
)

type PhoneNumberUseCase struct {
	repo   repository.PhoneNumberRepository
	logger *zap.Logger
}

func NewPhoneNumberUseCase(repo repository.PhoneNumberRepository, logger *zap.Logger) *PhoneNumberUseCase {
	return &PhoneNumberUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *PhoneNumberUseCase) GetAll(ctx context.Context, page domain.Pagination) ([]domain.PhoneNumber, error) {
	if !page.Valid() {
		return nil, errors.ErrInvalidPagination
	}
	return uc.repo.GetAll(ctx, page)
}

func (uc *PhoneNumberUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFound(domain.EntityPhoneNumber, id)
	}
	return p, nil
}

func (uc *PhoneNumberUseCase) Create(ctx context.Context, req dto.CreatePhoneNumberRequest) (*domain.PhoneNumber, error) {
	p := domain.PhoneNumber{ID: uuid.New(), PhoneNumber: req.PhoneNumber}
	if err := uc.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (uc *PhoneNumberUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePhoneNumberRequest) (*domain.PhoneNumber, error) {
	p := domain.PhoneNumber{ID: id, PhoneNumber: req.PhoneNumber}
	found, err := uc.repo.Update(ctx, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NotFound(domain.EntityPhoneNumber, id)
	}
	return &p, nil
}

func (uc *PhoneNumberUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := uc.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return errors.NotFound(domain.EntityPhoneNumber, id)
	}
	return nil
}
