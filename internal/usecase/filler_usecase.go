package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
)

// FillerUseCase наполняет базу демонстрационными данными
type FillerUseCase struct {
	store  repository.Store
	logger *zap.Logger
}

func NewFillerUseCase(store repository.Store, logger *zap.Logger) *FillerUseCase {
	return &FillerUseCase{
		store:  store,
		logger: logger,
	}
}

type seedActivity struct {
	name     string
	children []seedActivity
}

var seedActivities = []seedActivity{
	{name: "Food", children: []seedActivity{
		{name: "Meat"},
		{name: "Milk"},
	}},
	{name: "Cars", children: []seedActivity{
		{name: "Trucks"},
		{name: "Light cars", children: []seedActivity{
			{name: "Parts"},
			{name: "Accessories"},
		}},
	}},
}

var seedPhoneNumbers = []string{"+78005553535", "+78005553536"}

// Fill creates the demo data in one unit of work: either all of it is stored
// or none.
func (uc *FillerUseCase) Fill(ctx context.Context) error {
	err := uc.store.Do(ctx, func(ctx context.Context) error {
		rootIDs := make([]uuid.UUID, 0, len(seedActivities))
		for _, seed := range seedActivities {
			id, err := uc.createActivity(ctx, seed, nil)
			if err != nil {
				return err
			}
			rootIDs = append(rootIDs, id)
		}

		phoneIDs := make([]uuid.UUID, 0, len(seedPhoneNumbers))
		for _, number := range seedPhoneNumbers {
			p := domain.PhoneNumber{ID: uuid.New(), PhoneNumber: number}
			if err := uc.store.PhoneNumbers().Create(ctx, &p); err != nil {
				return err
			}
			phoneIDs = append(phoneIDs, p.ID)
		}

		building := domain.Building{
			ID:        uuid.New(),
			Address:   "Moscow, Lenin str. 3",
			Latitude:  55.7558,
			Longitude: 37.6176,
		}
		if err := uc.store.Buildings().Create(ctx, &building); err != nil {
			return err
		}

		org := domain.Organization{ID: uuid.New(), Name: "Horns and hooves", BuildingID: building.ID}
		if err := uc.store.Organizations().Create(ctx, &org); err != nil {
			return err
		}
		if err := uc.store.Organizations().AssignActivities(ctx, org.ID, rootIDs); err != nil {
			return err
		}
		return uc.store.Organizations().AssignPhoneNumbers(ctx, org.ID, phoneIDs)
	})
	if err != nil {
		uc.logger.Error("Failed to fill database", zap.Error(err))
		return err
	}

	uc.logger.Info("Database filled with demo data")
	return nil
}

func (uc *FillerUseCase) createActivity(ctx context.Context, seed seedActivity, parentID *uuid.UUID) (uuid.UUID, error) {
	a := domain.Activity{ID: uuid.New(), Name: seed.name, ParentID: parentID}
	if err := uc.store.Activities().Create(ctx, &a); err != nil {
		return uuid.Nil, err
	}
	for _, child := range seed.children {
		if _, err := uc.createActivity(ctx, child, &a.ID); err != nil {
			return uuid.Nil, err
		}
	}
	return a.ID, nil
}
