package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
)

const activityColumns = "id, name, parent_id"

type activityRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewActivityRepository(db *DB) repository.ActivityRepository {
	return &activityRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *activityRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities ORDER BY id LIMIT ? OFFSET ?"

	activities := []domain.Activity{}
	if err := r.db.selectIn(ctx, &activities, query, page.Limit, page.Offset); err != nil {
		r.logger.Error("Failed to list activities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return activities, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE id = ?"

	var a domain.Activity
	found, err := r.db.get(ctx, &a, query, id)
	if err != nil {
		r.logger.Error("Failed to get activity", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if !found {
		return nil, nil
	}
	return &a, nil
}

func (r *activityRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error) {
	if len(ids) == 0 {
		return []domain.Activity{}, nil
	}
	query := "SELECT " + activityColumns + " FROM activities WHERE id IN (?) ORDER BY id"

	activities := []domain.Activity{}
	if err := r.db.selectIn(ctx, &activities, query, ids); err != nil {
		r.logger.Error("Failed to get activities by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return activities, nil
}

func (r *activityRepository) GetChildren(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Activity, error) {
	if len(parentIDs) == 0 {
		return []domain.Activity{}, nil
	}
	query := "SELECT " + activityColumns + " FROM activities WHERE parent_id IN (?) ORDER BY id"

	children := []domain.Activity{}
	if err := r.db.selectIn(ctx, &children, query, parentIDs); err != nil {
		r.logger.Error("Failed to get activity children", zap.Int("parents", len(parentIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return children, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	query := "INSERT INTO activities (id, name, parent_id) VALUES (?, ?, ?)"

	if _, err := r.db.exec(ctx, query, activity.ID, activity.Name, activity.ParentID); err != nil {
		r.logger.Error("Failed to create activity", zap.String("name", activity.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) (bool, error) {
	query := "UPDATE activities SET name = ?, parent_id = ? WHERE id = ?"

	n, err := r.db.exec(ctx, query, activity.Name, activity.ParentID, activity.ID)
	if err != nil {
		r.logger.Error("Failed to update activity", zap.String("id", activity.ID.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}

func (r *activityRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.exec(ctx, "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete activity", zap.String("id", id.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}
