package usecase_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/org-directory/internal/domain"
)

// passThroughUoW runs fn directly; the mocked repositories do not care about
// transactions.
type passThroughUoW struct{}

func (passThroughUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passThroughUoW) View(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockActivityRepository is a mock of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Activity, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) GetChildren(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Activity, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *domain.Activity) (bool, error) {
	args := m.Called(ctx, activity)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBuildingRepository is a mock of BuildingRepository
type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Building, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}

func (m *MockBuildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}

func (m *MockBuildingRepository) Create(ctx context.Context, building *domain.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) Update(ctx context.Context, building *domain.Building) (bool, error) {
	args := m.Called(ctx, building)
	return args.Bool(0), args.Error(1)
}

func (m *MockBuildingRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockPhoneNumberRepository is a mock of PhoneNumberRepository
type MockPhoneNumberRepository struct {
	mock.Mock
}

func (m *MockPhoneNumberRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.PhoneNumber, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PhoneNumber), args.Error(1)
}

func (m *MockPhoneNumberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PhoneNumber), args.Error(1)
}

func (m *MockPhoneNumberRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PhoneNumber, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PhoneNumber), args.Error(1)
}

func (m *MockPhoneNumberRepository) Create(ctx context.Context, phone *domain.PhoneNumber) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockPhoneNumberRepository) Update(ctx context.Context, phone *domain.PhoneNumber) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockPhoneNumberRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockOrganizationRepository is a mock of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Search(ctx context.Context, filter domain.OrganizationFilter, page domain.Pagination) ([]domain.Organization, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) (bool, error) {
	args := m.Called(ctx, org)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) ActivitiesOf(ctx context.Context, orgIDs []uuid.UUID) (map[uuid.UUID][]domain.Activity, error) {
	args := m.Called(ctx, orgIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]domain.Activity), args.Error(1)
}

func (m *MockOrganizationRepository) PhoneNumbersOf(ctx context.Context, orgIDs []uuid.UUID) (map[uuid.UUID][]domain.PhoneNumber, error) {
	args := m.Called(ctx, orgIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]domain.PhoneNumber), args.Error(1)
}

func (m *MockOrganizationRepository) AssignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	args := m.Called(ctx, orgID, activityIDs)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UnassignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	args := m.Called(ctx, orgID, activityIDs)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AssignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	args := m.Called(ctx, orgID, phoneIDs)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UnassignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	args := m.Called(ctx, orgID, phoneIDs)
	return args.Error(0)
}
