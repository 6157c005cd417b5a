package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
)

const buildingColumns = "id, address, latitude, longitude"

type buildingRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewBuildingRepository(db *DB) repository.BuildingRepository {
	return &buildingRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *buildingRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Building, error) {
	query := "SELECT " + buildingColumns + " FROM buildings ORDER BY id LIMIT ? OFFSET ?"

	buildings := []domain.Building{}
	if err := r.db.selectIn(ctx, &buildings, query, page.Limit, page.Offset); err != nil {
		r.logger.Error("Failed to list buildings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return buildings, nil
}

func (r *buildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	query := "SELECT " + buildingColumns + " FROM buildings WHERE id = ?"

	var b domain.Building
	found, err := r.db.get(ctx, &b, query, id)
	if err != nil {
		r.logger.Error("Failed to get building", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if !found {
		return nil, nil
	}
	return &b, nil
}

func (r *buildingRepository) Create(ctx context.Context, building *domain.Building) error {
	if building.ID == uuid.Nil {
		building.ID = uuid.New()
	}
	query := "INSERT INTO buildings (id, address, latitude, longitude) VALUES (?, ?, ?, ?)"

	_, err := r.db.exec(ctx, query, building.ID, building.Address, building.Latitude, building.Longitude)
	if err != nil {
		r.logger.Error("Failed to create building", zap.String("address", building.Address), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *buildingRepository) Update(ctx context.Context, building *domain.Building) (bool, error) {
	query := "UPDATE buildings SET address = ?, latitude = ?, longitude = ? WHERE id = ?"

	n, err := r.db.exec(ctx, query, building.Address, building.Latitude, building.Longitude, building.ID)
	if err != nil {
		r.logger.Error("Failed to update building", zap.String("id", building.ID.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}

// DeleteByID relies on ON DELETE CASCADE for organizations and their links.
func (r *buildingRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.exec(ctx, "DELETE FROM buildings WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete building", zap.String("id", id.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}
