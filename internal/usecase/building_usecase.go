package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/geo"
	"github.com/org-directory/internal/usecase/dto"
)

type BuildingUseCase struct {
	uow    repository.UnitOfWork
	repo   repository.BuildingRepository
	logger *zap.Logger
}

func NewBuildingUseCase(
	uow repository.UnitOfWork,
	repo repository.BuildingRepository,
	logger *zap.Logger,
) *BuildingUseCase {
	return &BuildingUseCase{
		uow:    uow,
		repo:   repo,
		logger: logger,
	}
}

func (uc *BuildingUseCase) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Building, error) {
	if !page.Valid() {
		return nil, errors.ErrInvalidPagination
	}
	return uc.repo.GetAll(ctx, page)
}

func (uc *BuildingUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.NotFound(domain.EntityBuilding, id)
	}
	return b, nil
}

func (uc *BuildingUseCase) Create(ctx context.Context, req dto.CreateBuildingRequest) (*domain.Building, error) {
	b, err := buildingFromRequest(uuid.New(), req)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, &b); err != nil {
		return nil, err
	}

	uc.logger.Info("Building created", zap.String("id", b.ID.String()))
	return &b, nil
}

func (uc *BuildingUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBuildingRequest) (*domain.Building, error) {
	b, err := buildingFromRequest(id, req)
	if err != nil {
		return nil, err
	}

	found, err := uc.repo.Update(ctx, &b)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NotFound(domain.EntityBuilding, id)
	}
	return &b, nil
}

// Delete удаляет здание; организации в нём удаляются каскадно
func (uc *BuildingUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := uc.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return errors.NotFound(domain.EntityBuilding, id)
	}

	uc.logger.Info("Building deleted", zap.String("id", id.String()))
	return nil
}

func buildingFromRequest(id uuid.UUID, req dto.CreateBuildingRequest) (domain.Building, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return domain.Building{}, errors.Validation("latitude and longitude are required")
	}
	if !geo.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return domain.Building{}, errors.ErrInvalidCoordinates
	}
	return domain.Building{
		ID:        id,
		Address:   req.Address,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}, nil
}
