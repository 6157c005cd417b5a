package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
)

// Fixtures creates entities through the repositories and fails the test on
// the first error.
type Fixtures struct {
	t     *testing.T
	ctx   context.Context
	store repository.Store
}

func NewFixtures(t *testing.T, store repository.Store) *Fixtures {
	return &Fixtures{t: t, ctx: context.Background(), store: store}
}

func (f *Fixtures) Building(address string, lat, lon float64) domain.Building {
	f.t.Helper()
	b := domain.Building{Address: address, Latitude: lat, Longitude: lon}
	if err := f.store.Buildings().Create(f.ctx, &b); err != nil {
		f.t.Fatalf("create building: %v", err)
	}
	return b
}

func (f *Fixtures) Activity(name string, parent *domain.Activity) domain.Activity {
	f.t.Helper()
	a := domain.Activity{Name: name}
	if parent != nil {
		id := parent.ID
		a.ParentID = &id
	}
	if err := f.store.Activities().Create(f.ctx, &a); err != nil {
		f.t.Fatalf("create activity: %v", err)
	}
	return a
}

func (f *Fixtures) PhoneNumber(number string) domain.PhoneNumber {
	f.t.Helper()
	p := domain.PhoneNumber{PhoneNumber: number}
	if err := f.store.PhoneNumbers().Create(f.ctx, &p); err != nil {
		f.t.Fatalf("create phone number: %v", err)
	}
	return p
}

func (f *Fixtures) Organization(name string, building domain.Building, activities ...domain.Activity) domain.Organization {
	f.t.Helper()
	o := domain.Organization{Name: name, BuildingID: building.ID}
	if err := f.store.Organizations().Create(f.ctx, &o); err != nil {
		f.t.Fatalf("create organization: %v", err)
	}
	if len(activities) > 0 {
		ids := make([]uuid.UUID, 0, len(activities))
		for _, a := range activities {
			ids = append(ids, a.ID)
		}
		if err := f.store.Organizations().AssignActivities(f.ctx, o.ID, ids); err != nil {
			f.t.Fatalf("assign activities: %v", err)
		}
	}
	return o
}
