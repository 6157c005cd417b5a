package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

// OrganizationRepository определяет методы для работы с организациями и их связями.
// Search и GetByID возвращают организации без видов деятельности и телефонов.
type OrganizationRepository interface {
	// Search возвращает страницу организаций, удовлетворяющих фильтру.
	// Каждая организация встречается не более одного раза, порядок по id.
	Search(ctx context.Context, filter domain.OrganizationFilter, page domain.Pagination) ([]domain.Organization, error)

	// GetByID возвращает организацию или nil, если её нет
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	Create(ctx context.Context, org *domain.Organization) error

	Update(ctx context.Context, org *domain.Organization) (bool, error)

	// DeleteByID удаляет организацию и её связи
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ActivitiesOf возвращает активности каждой организации, ключ - id организации
	ActivitiesOf(ctx context.Context, orgIDs []uuid.UUID) (map[uuid.UUID][]domain.Activity, error)

	// PhoneNumbersOf возвращает номера каждой организации, ключ - id организации
	PhoneNumbersOf(ctx context.Context, orgIDs []uuid.UUID) (map[uuid.UUID][]domain.PhoneNumber, error)

	// AssignActivities добавляет связи; существующие пары пропускаются
	AssignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error

	// UnassignActivities удаляет связи; отсутствующие пары пропускаются
	UnassignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error

	AssignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error

	UnassignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error
}
