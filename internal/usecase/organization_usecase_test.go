package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/geo"
	"github.com/org-directory/internal/repository/memory"
	"github.com/org-directory/internal/usecase"
	"github.com/org-directory/internal/usecase/dto"
)

func ptr[T any](v T) *T { return &v }

func newOrganizationUseCase(store *memory.Store, depth int) *usecase.OrganizationUseCase {
	logger := zap.NewNop()
	tree := usecase.NewActivityTree(store.Activities(), logger)
	return usecase.NewOrganizationUseCase(
		store,
		store.Organizations(),
		store.Buildings(),
		store.Activities(),
		store.PhoneNumbers(),
		tree,
		depth,
		logger,
	)
}

func namesOf(orgs []domain.Organization) []string {
	names := make([]string, 0, len(orgs))
	for _, o := range orgs {
		names = append(names, o.Name)
	}
	return names
}

func TestOrganizationUseCase_SearchValidation(t *testing.T) {
	ctx := context.Background()

	type testCase struct {
		name string
		req  dto.SearchOrganizationsRequest
		code string
	}

	buildingID := uuid.New()
	tests := []testCase{
		{
			name: "building_id combined with geo",
			req: dto.SearchOrganizationsRequest{
				BuildingID: &buildingID,
				Geo:        &dto.GeoQuery{Kind: geo.KindRadius, Lat: ptr(55.0), Lon: ptr(37.0), RadiusM: ptr(100.0)},
				Page:       domain.DefaultPagination(),
			},
			code: errors.ErrGeoWithBuilding.Code,
		},
		{
			name: "radius without radius_m",
			req: dto.SearchOrganizationsRequest{
				Geo:  &dto.GeoQuery{Kind: geo.KindRadius, Lat: ptr(55.0), Lon: ptr(37.0)},
				Page: domain.DefaultPagination(),
			},
			code: errors.CodeValidation,
		},
		{
			name: "radius above the maximum",
			req: dto.SearchOrganizationsRequest{
				Geo:  &dto.GeoQuery{Kind: geo.KindRadius, Lat: ptr(55.0), Lon: ptr(37.0), RadiusM: ptr(100001.0)},
				Page: domain.DefaultPagination(),
			},
			code: errors.ErrInvalidRadius.Code,
		},
		{
			name: "latitude out of range",
			req: dto.SearchOrganizationsRequest{
				Geo:  &dto.GeoQuery{Kind: geo.KindRadius, Lat: ptr(91.0), Lon: ptr(37.0), RadiusM: ptr(10.0)},
				Page: domain.DefaultPagination(),
			},
			code: errors.ErrInvalidCoordinates.Code,
		},
		{
			name: "bbox with inverted longitudes",
			req: dto.SearchOrganizationsRequest{
				Geo: &dto.GeoQuery{
					Kind:   geo.KindBBox,
					LatMin: ptr(10.0), LatMax: ptr(20.0),
					LonMin: ptr(170.0), LonMax: ptr(-170.0),
				},
				Page: domain.DefaultPagination(),
			},
			code: errors.ErrInvalidBBox.Code,
		},
		{
			name: "unknown geo kind",
			req: dto.SearchOrganizationsRequest{
				Geo:  &dto.GeoQuery{Kind: "polygon"},
				Page: domain.DefaultPagination(),
			},
			code: errors.CodeValidation,
		},
		{
			name: "limit above maximum",
			req:  dto.SearchOrganizationsRequest{Page: domain.Pagination{Limit: 101}},
			code: errors.ErrInvalidPagination.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orgRepo := &MockOrganizationRepository{}
			buildingRepo := &MockBuildingRepository{}
			activityRepo := &MockActivityRepository{}
			phoneRepo := &MockPhoneNumberRepository{}
			tree := usecase.NewActivityTree(activityRepo, zap.NewNop())

			uc := usecase.NewOrganizationUseCase(
				passThroughUoW{}, orgRepo, buildingRepo, activityRepo, phoneRepo, tree, 3, zap.NewNop(),
			)

			result, err := uc.Search(ctx, tt.req)

			require.Error(t, err)
			assert.Nil(t, result)
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.KindValidation, appErr.Kind)
			assert.Equal(t, tt.code, appErr.Code)

			// Rejected before any storage access.
			orgRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
			activityRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			activityRepo.AssertNotCalled(t, "GetChildren", mock.Anything, mock.Anything)
		})
	}
}

func TestOrganizationUseCase_SearchUnknownActivitySkipsQuery(t *testing.T) {
	ctx := context.Background()
	orgRepo := &MockOrganizationRepository{}
	activityRepo := &MockActivityRepository{}
	tree := usecase.NewActivityTree(activityRepo, zap.NewNop())
	uc := usecase.NewOrganizationUseCase(
		passThroughUoW{}, orgRepo, &MockBuildingRepository{}, activityRepo, &MockPhoneNumberRepository{}, tree, 3, zap.NewNop(),
	)

	unknown := uuid.New()
	activityRepo.On("GetByID", ctx, unknown).Return(nil, nil).Once()

	result, err := uc.Search(ctx, dto.SearchOrganizationsRequest{
		ActivityID: &unknown,
		Page:       domain.DefaultPagination(),
	})

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	orgRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	activityRepo.AssertExpectations(t)
}

func TestOrganizationUseCase_SearchHydratesBatch(t *testing.T) {
	ctx := context.Background()
	orgRepo := &MockOrganizationRepository{}
	activityRepo := &MockActivityRepository{}
	tree := usecase.NewActivityTree(activityRepo, zap.NewNop())
	uc := usecase.NewOrganizationUseCase(
		passThroughUoW{}, orgRepo, &MockBuildingRepository{}, activityRepo, &MockPhoneNumberRepository{}, tree, 1, zap.NewNop(),
	)

	shared := domain.Activity{ID: uuid.New(), Name: "Food"}
	o1 := domain.Organization{ID: uuid.New(), Name: "one"}
	o2 := domain.Organization{ID: uuid.New(), Name: "two"}
	page := domain.DefaultPagination()

	orgRepo.On("Search", ctx, domain.OrganizationFilter{}, page).
		Return([]domain.Organization{o1, o2}, nil).Once()
	orgRepo.On("ActivitiesOf", ctx, []uuid.UUID{o1.ID, o2.ID}).
		Return(map[uuid.UUID][]domain.Activity{o1.ID: {shared}, o2.ID: {shared}}, nil).Once()
	orgRepo.On("PhoneNumbersOf", ctx, []uuid.UUID{o1.ID, o2.ID}).
		Return(map[uuid.UUID][]domain.PhoneNumber{}, nil).Once()
	activityRepo.On("GetChildren", ctx, []uuid.UUID{shared.ID}).
		Return([]domain.Activity{}, nil).Once()

	result, err := uc.Search(ctx, dto.SearchOrganizationsRequest{Page: page})

	require.NoError(t, err)
	require.Len(t, result, 2)
	for _, o := range result {
		require.Len(t, o.Activities, 1)
		assert.Equal(t, shared.ID, o.Activities[0].ID)
		assert.NotNil(t, o.Activities[0].Children)
		assert.NotNil(t, o.PhoneNumbers)
		assert.Empty(t, o.PhoneNumbers)
	}
	orgRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
}

func TestOrganizationUseCase_FoodCarsScenario(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newOrganizationUseCase(store, 2)

	food := fx.Activity("Food", nil)
	fx.Activity("Meat", &food)
	fx.Activity("Milk", &food)
	cars := fx.Activity("Cars", nil)
	fx.Activity("Trucks", &cars)
	light := fx.Activity("Light cars", &cars)
	fx.Activity("Parts", &light)
	fx.Activity("Accessories", &light)

	building := fx.Building("Moscow, Lenin str. 3", 55.7558, 37.6176)
	org := fx.Organization("O", building, food)

	byFood, err := uc.Search(ctx, dto.SearchOrganizationsRequest{ActivityID: &food.ID, Page: domain.DefaultPagination()})
	require.NoError(t, err)
	require.Len(t, byFood, 1)
	assert.Equal(t, org.ID, byFood[0].ID)

	require.Len(t, byFood[0].Activities, 1)
	assert.Equal(t, "Food", byFood[0].Activities[0].Name)
	assert.Len(t, byFood[0].Activities[0].Children, 2)

	byCars, err := uc.Search(ctx, dto.SearchOrganizationsRequest{ActivityID: &cars.ID, Page: domain.DefaultPagination()})
	require.NoError(t, err)
	assert.Empty(t, byCars)
}

func TestOrganizationUseCase_SearchByDescendantActivity(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)

	root := fx.Activity("root", nil)
	a := fx.Activity("A", &root)
	b := fx.Activity("B", &a)
	c := fx.Activity("C", &b)

	building := fx.Building("addr", 10, 10)
	fx.Organization("at-b", building, b)
	fx.Organization("at-c", building, c)
	fx.Organization("at-all", building, root, a, b)

	uc := newOrganizationUseCase(store, 2)
	result, err := uc.Search(ctx, dto.SearchOrganizationsRequest{ActivityID: &root.ID, Page: domain.DefaultPagination()})
	require.NoError(t, err)

	// at-c is three levels down; at-all matches through three activities but
	// is returned once.
	assert.ElementsMatch(t, []string{"at-b", "at-all"}, namesOf(result))
}

func TestOrganizationUseCase_SearchByGeo(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newOrganizationUseCase(store, 3)

	center := fx.Building("center", 55.7558, 37.6176)
	far := fx.Building("far", 59.9343, 30.3351)
	fx.Organization("near", center)
	fx.Organization("remote", far)

	result, err := uc.Search(ctx, dto.SearchOrganizationsRequest{
		Geo:  &dto.GeoQuery{Kind: geo.KindRadius, Lat: ptr(55.7558), Lon: ptr(37.6176), RadiusM: ptr(1000.0)},
		Page: domain.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"near"}, namesOf(result))

	result, err = uc.Search(ctx, dto.SearchOrganizationsRequest{
		Geo: &dto.GeoQuery{
			Kind:   geo.KindBBox,
			LatMin: ptr(55.0), LatMax: ptr(60.0),
			LonMin: ptr(30.0), LonMax: ptr(38.0),
		},
		Page: domain.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"near", "remote"}, namesOf(result))
}

func TestOrganizationUseCase_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newOrganizationUseCase(store, 3)

	building := fx.Building("addr", 1, 1)
	food := fx.Activity("Food", nil)
	phone := fx.PhoneNumber("+70000000000")

	t.Run("success", func(t *testing.T) {
		org, err := uc.Create(ctx, dto.CreateOrganizationRequest{
			Name:           "Horns and hooves",
			BuildingID:     building.ID,
			ActivityIDs:    []uuid.UUID{food.ID, food.ID},
			PhoneNumberIDs: []uuid.UUID{phone.ID},
		})
		require.NoError(t, err)
		require.NotNil(t, org)
		assert.Equal(t, "Horns and hooves", org.Name)
		require.Len(t, org.Activities, 1)
		require.Len(t, org.PhoneNumbers, 1)

		got, err := uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Equal(t, org, got)
	})

	t.Run("unknown building", func(t *testing.T) {
		missing := uuid.New()
		_, err := uc.Create(ctx, dto.CreateOrganizationRequest{Name: "x", BuildingID: missing})
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("unknown activity rolls back", func(t *testing.T) {
		before, err := uc.Search(ctx, dto.SearchOrganizationsRequest{Page: domain.DefaultPagination()})
		require.NoError(t, err)

		missing := uuid.New()
		_, err = uc.Create(ctx, dto.CreateOrganizationRequest{
			Name:        "ghost",
			BuildingID:  building.ID,
			ActivityIDs: []uuid.UUID{missing},
		})
		require.Error(t, err)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.KindNotFound, appErr.Kind)
		assert.Equal(t, missing.String(), appErr.Details["id"])
		assert.Equal(t, domain.EntityActivity, appErr.Details["entity"])

		after, err := uc.Search(ctx, dto.SearchOrganizationsRequest{Page: domain.DefaultPagination()})
		require.NoError(t, err)
		assert.Equal(t, len(before), len(after))
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := uc.GetByID(ctx, uuid.New())
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestOrganizationUseCase_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newOrganizationUseCase(store, 3)

	b1 := fx.Building("one", 1, 1)
	b2 := fx.Building("two", 2, 2)
	org := fx.Organization("org", b1)

	updated, err := uc.Update(ctx, org.ID, dto.UpdateOrganizationRequest{Name: "renamed", BuildingID: b2.ID})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, b2.ID, updated.BuildingID)

	_, err = uc.Update(ctx, org.ID, dto.UpdateOrganizationRequest{Name: "x", BuildingID: uuid.New()})
	assert.True(t, errors.IsNotFound(err))

	_, err = uc.Update(ctx, uuid.New(), dto.UpdateOrganizationRequest{Name: "x", BuildingID: b1.ID})
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, uc.Delete(ctx, org.ID))
	assert.True(t, errors.IsNotFound(uc.Delete(ctx, org.ID)))
}

func TestOrganizationUseCase_Associations(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newOrganizationUseCase(store, 3)

	building := fx.Building("addr", 1, 1)
	org := fx.Organization("org", building)
	food := fx.Activity("Food", nil)
	cars := fx.Activity("Cars", nil)
	phone := fx.PhoneNumber("+70000000001")

	t.Run("assign is idempotent", func(t *testing.T) {
		require.NoError(t, uc.AssignActivities(ctx, org.ID, []uuid.UUID{food.ID}))
		require.NoError(t, uc.AssignActivities(ctx, org.ID, []uuid.UUID{food.ID, food.ID}))

		got, err := uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, got.Activities, 1)
		assert.Equal(t, food.ID, got.Activities[0].ID)
	})

	t.Run("unassign of absent pair is a no-op", func(t *testing.T) {
		require.NoError(t, uc.UnassignActivities(ctx, org.ID, []uuid.UUID{cars.ID}))

		got, err := uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Len(t, got.Activities, 1)
	})

	t.Run("unassign removes the link", func(t *testing.T) {
		require.NoError(t, uc.UnassignActivities(ctx, org.ID, []uuid.UUID{food.ID}))

		got, err := uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Activities)
		assert.Empty(t, got.Activities)
	})

	t.Run("assign unknown activity names it", func(t *testing.T) {
		missing := uuid.New()
		err := uc.AssignActivities(ctx, org.ID, []uuid.UUID{food.ID, missing})
		require.Error(t, err)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.KindNotFound, appErr.Kind)
		assert.Equal(t, missing.String(), appErr.Details["id"])

		got, err := uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Activities, "partial assignment must be rolled back")
	})

	t.Run("assign to unknown organization", func(t *testing.T) {
		err := uc.AssignActivities(ctx, uuid.New(), []uuid.UUID{food.ID})
		require.Error(t, err)
		appErr, _ := errors.As(err)
		assert.Equal(t, domain.EntityOrganization, appErr.Details["entity"])
	})

	t.Run("phone numbers", func(t *testing.T) {
		require.NoError(t, uc.AssignPhoneNumbers(ctx, org.ID, []uuid.UUID{phone.ID}))
		require.NoError(t, uc.AssignPhoneNumbers(ctx, org.ID, []uuid.UUID{phone.ID}))

		got, err := uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, got.PhoneNumbers, 1)
		assert.Equal(t, "+70000000001", got.PhoneNumbers[0].PhoneNumber)

		require.NoError(t, uc.UnassignPhoneNumbers(ctx, org.ID, []uuid.UUID{phone.ID}))
		got, err = uc.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Empty(t, got.PhoneNumbers)

		err = uc.AssignPhoneNumbers(ctx, org.ID, []uuid.UUID{uuid.New()})
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestOrganizationUseCase_EmptyUnassignTouchesNothing(t *testing.T) {
	ctx := context.Background()
	orgRepo := &MockOrganizationRepository{}
	uc := usecase.NewOrganizationUseCase(
		passThroughUoW{}, orgRepo, &MockBuildingRepository{}, &MockActivityRepository{},
		&MockPhoneNumberRepository{}, usecase.NewActivityTree(&MockActivityRepository{}, zap.NewNop()), 3, zap.NewNop(),
	)

	require.NoError(t, uc.UnassignActivities(ctx, uuid.New(), nil))
	require.NoError(t, uc.UnassignPhoneNumbers(ctx, uuid.New(), []uuid.UUID{}))
	orgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
