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

type ActivityUseCase struct {
	uow    repository.UnitOfWork
	repo   repository.ActivityRepository
	tree   *ActivityTree
	depth  int
	logger *zap.Logger
}

func NewActivityUseCase(
	uow repository.UnitOfWork,
	repo repository.ActivityRepository,
	tree *ActivityTree,
	depth int,
	logger *zap.Logger,
) *ActivityUseCase {
	return &ActivityUseCase{
		uow:    uow,
		repo:   repo,
		tree:   tree,
		depth:  depth,
		logger: logger,
	}
}

// depthFor caps a client-supplied depth at the configured one.
func (uc *ActivityUseCase) depthFor(requested *int) int {
	if requested == nil || *requested > uc.depth {
		return uc.depth
	}
	if *requested < 0 {
		return 0
	}
	return *requested
}

// GetAll возвращает страницу активностей, каждая раскрыта до заданной глубины
func (uc *ActivityUseCase) GetAll(ctx context.Context, page domain.Pagination, depth *int) ([]domain.Activity, error) {
	if !page.Valid() {
		return nil, errors.ErrInvalidPagination
	}

	var result []domain.Activity
	err := uc.uow.View(ctx, func(ctx context.Context) error {
		activities, err := uc.repo.GetAll(ctx, page)
		if err != nil {
			return err
		}
		result, err = uc.tree.Expand(ctx, activities, uc.depthFor(depth))
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ActivityUseCase) GetByID(ctx context.Context, id uuid.UUID, depth *int) (*domain.Activity, error) {
	var result *domain.Activity
	err := uc.uow.View(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.tree.Subtree(ctx, id, uc.depthFor(depth))
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.NotFound(domain.EntityActivity, id)
	}
	return result, nil
}

// Descendants returns the ids of the activity and its descendants.
func (uc *ActivityUseCase) Descendants(ctx context.Context, id uuid.UUID, depth *int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := uc.uow.View(ctx, func(ctx context.Context) error {
		var err error
		ids, err = uc.tree.DescendantIDs(ctx, id, uc.depthFor(depth))
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.NotFound(domain.EntityActivity, id)
	}
	return ids, nil
}

func (uc *ActivityUseCase) Create(ctx context.Context, req dto.CreateActivityRequest) (*domain.Activity, error) {
	activity := domain.Activity{ID: uuid.New(), Name: req.Name, ParentID: req.ParentID}

	var result *domain.Activity
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkParent(ctx, activity.ID, activity.ParentID); err != nil {
			return err
		}
		if err := uc.repo.Create(ctx, &activity); err != nil {
			return err
		}

		var err error
		result, err = uc.tree.Subtree(ctx, activity.ID, uc.depth)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		uc.logger.Error("Created activity is missing", zap.String("id", activity.ID.String()))
		return nil, errors.Internal()
	}

	uc.logger.Info("Activity created", zap.String("id", activity.ID.String()))
	return result, nil
}

func (uc *ActivityUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateActivityRequest) (*domain.Activity, error) {
	activity := domain.Activity{ID: id, Name: req.Name, ParentID: req.ParentID}

	var result *domain.Activity
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return errors.NotFound(domain.EntityActivity, id)
		}

		if err := uc.checkParent(ctx, id, activity.ParentID); err != nil {
			return err
		}
		if _, err := uc.repo.Update(ctx, &activity); err != nil {
			return err
		}

		result, err = uc.tree.Subtree(ctx, id, uc.depth)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ActivityUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		found, err := uc.repo.DeleteByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return errors.NotFound(domain.EntityActivity, id)
		}
		return nil
	})
}

// checkParent verifies that the parent exists and is not the node itself or
// one of its descendants.
func (uc *ActivityUseCase) checkParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return errors.ErrActivityCycle
	}

	parent, err := uc.repo.GetByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return errors.NotFound(domain.EntityActivity, *parentID)
	}

	cycle, err := uc.tree.createsCycle(ctx, id, *parentID)
	if err != nil {
		return err
	}
	if cycle {
		return errors.ErrActivityCycle
	}
	return nil
}
