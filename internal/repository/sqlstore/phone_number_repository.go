package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
)

type phoneNumberRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewPhoneNumberRepository(db *DB) repository.PhoneNumberRepository {
	return &phoneNumberRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *phoneNumberRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.PhoneNumber, error) {
	query := "SELECT id, phone_number FROM phone_numbers ORDER BY id LIMIT ? OFFSET ?"

	phones := []domain.PhoneNumber{}
	if err := r.db.selectIn(ctx, &phones, query, page.Limit, page.Offset); err != nil {
		r.logger.Error("Failed to list phone numbers", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return phones, nil
}

func (r *phoneNumberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error) {
	var p domain.PhoneNumber
	found, err := r.db.get(ctx, &p, "SELECT id, phone_number FROM phone_numbers WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to get phone number", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (r *phoneNumberRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PhoneNumber, error) {
	if len(ids) == 0 {
		return []domain.PhoneNumber{}, nil
	}

	phones := []domain.PhoneNumber{}
	err := r.db.selectIn(ctx, &phones, "SELECT id, phone_number FROM phone_numbers WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		r.logger.Error("Failed to get phone numbers by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return phones, nil
}

func (r *phoneNumberRepository) Create(ctx context.Context, phone *domain.PhoneNumber) error {
	if phone.ID == uuid.Nil {
		phone.ID = uuid.New()
	}

	_, err := r.db.exec(ctx, "INSERT INTO phone_numbers (id, phone_number) VALUES (?, ?)", phone.ID, phone.PhoneNumber)
	if err != nil {
		r.logger.Error("Failed to create phone number", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *phoneNumberRepository) Update(ctx context.Context, phone *domain.PhoneNumber) (bool, error) {
	n, err := r.db.exec(ctx, "UPDATE phone_numbers SET phone_number = ? WHERE id = ?", phone.PhoneNumber, phone.ID)
	if err != nil {
		r.logger.Error("Failed to update phone number", zap.String("id", phone.ID.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}

func (r *phoneNumberRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.exec(ctx, "DELETE FROM phone_numbers WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete phone number", zap.String("id", id.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}
