// Package storetest holds the behavioural suite every repository.Store
// implementation must pass.
package storetest

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	apperrors "github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/geo"
)

// StoreSuite runs against the store returned by NewStore, which is called
// once per test and must return an empty store.
type StoreSuite struct {
	suite.Suite
	NewStore func(t *testing.T) repository.Store

	ctx   context.Context
	store repository.Store
	fx    *Fixtures
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore(s.T())
	s.fx = NewFixtures(s.T(), s.store)
}

func page(limit, offset int) domain.Pagination {
	return domain.Pagination{Limit: limit, Offset: offset}
}

func orgIDs(orgs []domain.Organization) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(orgs))
	for _, o := range orgs {
		ids = append(ids, o.ID)
	}
	return ids
}

func sortedIDs(ids ...uuid.UUID) []uuid.UUID {
	out := append([]uuid.UUID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// ============================================================================
// Activities
// ============================================================================

func (s *StoreSuite) TestActivity_CRUD() {
	repo := s.store.Activities()

	root := s.fx.Activity("Food", nil)
	child := s.fx.Activity("Meat", &root)

	got, err := repo.GetByID(s.ctx, child.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Meat", got.Name)
	s.Require().NotNil(got.ParentID)
	s.Equal(root.ID, *got.ParentID)

	missing, err := repo.GetByID(s.ctx, uuid.New())
	s.NoError(err)
	s.Nil(missing)

	child.Name = "Beef"
	ok, err := repo.Update(s.ctx, &child)
	s.Require().NoError(err)
	s.True(ok)

	got, err = repo.GetByID(s.ctx, child.ID)
	s.Require().NoError(err)
	s.Equal("Beef", got.Name)

	ok, err = repo.Update(s.ctx, &domain.Activity{ID: uuid.New(), Name: "ghost"})
	s.NoError(err)
	s.False(ok)

	ok, err = repo.DeleteByID(s.ctx, uuid.New())
	s.NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestActivity_DeleteDetachesChildren() {
	repo := s.store.Activities()

	root := s.fx.Activity("Cars", nil)
	child := s.fx.Activity("Trucks", &root)

	ok, err := repo.DeleteByID(s.ctx, root.ID)
	s.Require().NoError(err)
	s.True(ok)

	got, err := repo.GetByID(s.ctx, child.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Nil(got.ParentID)
}

func (s *StoreSuite) TestActivity_GetChildrenBatch() {
	food := s.fx.Activity("Food", nil)
	cars := s.fx.Activity("Cars", nil)
	meat := s.fx.Activity("Meat", &food)
	milk := s.fx.Activity("Milk", &food)
	trucks := s.fx.Activity("Trucks", &cars)
	s.fx.Activity("Parts", &trucks)

	children, err := s.store.Activities().GetChildren(s.ctx, []uuid.UUID{food.ID, cars.ID})
	s.Require().NoError(err)

	ids := make([]uuid.UUID, 0, len(children))
	for _, c := range children {
		ids = append(ids, c.ID)
		s.Nil(c.Children)
	}
	s.Equal(sortedIDs(meat.ID, milk.ID, trucks.ID), ids)

	none, err := s.store.Activities().GetChildren(s.ctx, nil)
	s.NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestActivity_GetByIDsSkipsMissing() {
	a := s.fx.Activity("Food", nil)
	b := s.fx.Activity("Cars", nil)

	got, err := s.store.Activities().GetByIDs(s.ctx, []uuid.UUID{a.ID, uuid.New(), b.ID})
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *StoreSuite) TestActivity_GetAllPaginates() {
	var ids []uuid.UUID
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, s.fx.Activity(name, nil).ID)
	}

	var seen []uuid.UUID
	for offset := 0; offset < 6; offset += 2 {
		items, err := s.store.Activities().GetAll(s.ctx, page(2, offset))
		s.Require().NoError(err)
		for _, a := range items {
			seen = append(seen, a.ID)
		}
	}
	s.Equal(sortedIDs(ids...), seen)
}

// ============================================================================
// Buildings and phone numbers
// ============================================================================

func (s *StoreSuite) TestBuilding_CRUD() {
	repo := s.store.Buildings()
	b := s.fx.Building("Moscow, Lenin str. 3", 55.7558, 37.6176)

	got, err := repo.GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(b, *got)

	b.Address = "Moscow, Lenin str. 5"
	ok, err := repo.Update(s.ctx, &b)
	s.Require().NoError(err)
	s.True(ok)

	all, err := repo.GetAll(s.ctx, page(10, 0))
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("Moscow, Lenin str. 5", all[0].Address)

	missing, err := repo.GetByID(s.ctx, uuid.New())
	s.NoError(err)
	s.Nil(missing)
}

func (s *StoreSuite) TestBuilding_DeleteCascadesToOrganizations() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	food := s.fx.Activity("Food", nil)
	org := s.fx.Organization("Horns and hooves", b, food)

	ok, err := s.store.Buildings().DeleteByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.store.Organizations().GetByID(s.ctx, org.ID)
	s.NoError(err)
	s.Nil(got)

	links, err := s.store.Organizations().ActivitiesOf(s.ctx, []uuid.UUID{org.ID})
	s.NoError(err)
	s.Empty(links[org.ID])

	stillThere, err := s.store.Activities().GetByID(s.ctx, food.ID)
	s.NoError(err)
	s.NotNil(stillThere)
}

func (s *StoreSuite) TestPhoneNumber_CRUD() {
	repo := s.store.PhoneNumbers()
	p := s.fx.PhoneNumber("+78005553535")

	got, err := repo.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("+78005553535", got.PhoneNumber)

	p.PhoneNumber = "+78005553536"
	ok, err := repo.Update(s.ctx, &p)
	s.Require().NoError(err)
	s.True(ok)

	byIDs, err := repo.GetByIDs(s.ctx, []uuid.UUID{p.ID, uuid.New()})
	s.Require().NoError(err)
	s.Require().Len(byIDs, 1)
	s.Equal("+78005553536", byIDs[0].PhoneNumber)

	ok, err = repo.DeleteByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = repo.DeleteByID(s.ctx, p.ID)
	s.NoError(err)
	s.False(ok)
}

// ============================================================================
// Organization search
// ============================================================================

func (s *StoreSuite) TestSearch_NameIsCaseInsensitiveSubstring() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	horns := s.fx.Organization("Horns and hooves", b)
	hornet := s.fx.Organization("Hornet Ltd", b)
	s.fx.Organization("Milk Co", b)

	name := "HORN"
	got, err := s.store.Organizations().Search(s.ctx, domain.OrganizationFilter{Name: &name}, page(10, 0))
	s.Require().NoError(err)
	s.Equal(sortedIDs(horns.ID, hornet.ID), orgIDs(got))
}

func (s *StoreSuite) TestSearch_NameTreatsWildcardsLiterally() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	juice := s.fx.Organization("100% Juice", b)
	s.fx.Organization("Juice_bar", b)
	s.fx.Organization("Plain", b)

	name := "%"
	got, err := s.store.Organizations().Search(s.ctx, domain.OrganizationFilter{Name: &name}, page(10, 0))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{juice.ID}, orgIDs(got))
}

func (s *StoreSuite) TestSearch_ByBuilding() {
	b1 := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	b2 := s.fx.Building("Tverskaya 1", 55.7570, 37.6150)
	o1 := s.fx.Organization("One", b1)
	s.fx.Organization("Two", b2)

	got, err := s.store.Organizations().Search(s.ctx, domain.OrganizationFilter{BuildingID: &b1.ID}, page(10, 0))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{o1.ID}, orgIDs(got))
}

func (s *StoreSuite) TestSearch_ActivityMatchesReturnEachOrganizationOnce() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	food := s.fx.Activity("Food", nil)
	meat := s.fx.Activity("Meat", &food)
	milk := s.fx.Activity("Milk", &food)
	cars := s.fx.Activity("Cars", nil)

	org := s.fx.Organization("Horns and hooves", b, food, meat, milk)
	s.fx.Organization("Autoparts", b, cars)

	filter := domain.OrganizationFilter{ActivityIDs: []uuid.UUID{food.ID, meat.ID, milk.ID}}
	got, err := s.store.Organizations().Search(s.ctx, filter, page(10, 0))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{org.ID}, orgIDs(got))
}

func (s *StoreSuite) TestSearch_Radius() {
	// ~467 m apart along the meridian.
	near := s.fx.Building("Red Square", 55.7558, 37.6176)
	far := s.fx.Building("Further north", 55.7600, 37.6176)
	o1 := s.fx.Organization("Near", near)
	o2 := s.fx.Organization("Far", far)

	filter := domain.OrganizationFilter{Geo: geo.Radius{Lat: 55.7558, Lon: 37.6176, RadiusM: 300}}
	got, err := s.store.Organizations().Search(s.ctx, filter, page(10, 0))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{o1.ID}, orgIDs(got))

	filter.Geo = geo.Radius{Lat: 55.7558, Lon: 37.6176, RadiusM: 1000}
	got, err = s.store.Organizations().Search(s.ctx, filter, page(10, 0))
	s.Require().NoError(err)
	s.Equal(sortedIDs(o1.ID, o2.ID), orgIDs(got))
}

func (s *StoreSuite) TestSearch_RadiusBoundaryIsInclusive() {
	centre := geo.Point{Lat: 55.7558, Lon: 37.6176}

	type placed struct {
		at geo.Point
		id  uuid.UUID
	}
	var points []placed
	for i := 1; i <= 40; i++ {
		p := geo.Point{
			Lat: centre.Lat + float64(i%7-3)*0.0571 + float64(i)*0.0013,
			Lon: centre.Lon + float64(i%5-2)*0.0733 + float64(i)*0.0021,
		}
		b := s.fx.Building("Boundary", p.Lat, p.Lon)
		o := s.fx.Organization("Boundary", b)
		points = append(points, placed{at: p, id: o.ID})
	}

	for _, p := range points {
		d := geo.HaversineDistance(centre.Lat, centre.Lon, p.at.Lat, p.at.Lon, geo.EarthRadiusM)

		filter := domain.OrganizationFilter{Geo: geo.Radius{Lat: centre.Lat, Lon: centre.Lon, RadiusM: d}}
		got, err := s.store.Organizations().Search(s.ctx, filter, page(100, 0))
		s.Require().NoError(err)
		s.Contains(orgIDs(got), p.id, "building at %.6f,%.6f (%.3f m) must match radius %.3f", p.at.Lat, p.at.Lon, d, d)

		filter.Geo = geo.Radius{Lat: centre.Lat, Lon: centre.Lon, RadiusM: d - 1}
		got, err = s.store.Organizations().Search(s.ctx, filter, page(100, 0))
		s.Require().NoError(err)
		s.NotContains(orgIDs(got), p.id, "building at %.3f m must not match radius %.3f", d, d-1)
	}
}

func (s *StoreSuite) TestSearch_BBoxEdgesAreInclusive() {
	south := s.fx.Building("South edge", 55.7558, 37.6176)
	north := s.fx.Building("North edge", 55.7600, 37.6200)
	outside := s.fx.Building("Outside", 55.7700, 37.6200)
	o1 := s.fx.Organization("South", south)
	o2 := s.fx.Organization("North", north)
	s.fx.Organization("Outside", outside)

	box := geo.BBox{LatMin: 55.7558, LatMax: 55.7600, LonMin: 37.6176, LonMax: 37.6200}
	got, err := s.store.Organizations().Search(s.ctx, domain.OrganizationFilter{Geo: box}, page(10, 0))
	s.Require().NoError(err)
	s.Equal(sortedIDs(o1.ID, o2.ID), orgIDs(got))
}

func (s *StoreSuite) TestSearch_CombinesConditions() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	far := s.fx.Building("Saint Petersburg", 59.9343, 30.3351)
	food := s.fx.Activity("Food", nil)

	match := s.fx.Organization("Horns and hooves", b, food)
	s.fx.Organization("Horns elsewhere", far, food)
	s.fx.Organization("Horns without food", b)

	name := "horns"
	filter := domain.OrganizationFilter{
		Name:        &name,
		ActivityIDs: []uuid.UUID{food.ID},
		Geo:         geo.Radius{Lat: 55.7558, Lon: 37.6176, RadiusM: 5000},
	}
	got, err := s.store.Organizations().Search(s.ctx, filter, page(10, 0))
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{match.ID}, orgIDs(got))
}

func (s *StoreSuite) TestSearch_PaginationPartitionsResult() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	var all []uuid.UUID
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		all = append(all, s.fx.Organization(name, b).ID)
	}

	var seen []uuid.UUID
	for offset := 0; offset < len(all); offset += 3 {
		got, err := s.store.Organizations().Search(s.ctx, domain.OrganizationFilter{}, page(3, offset))
		s.Require().NoError(err)
		s.LessOrEqual(len(got), 3)
		seen = append(seen, orgIDs(got)...)
	}
	s.Equal(sortedIDs(all...), seen)

	empty, err := s.store.Organizations().Search(s.ctx, domain.OrganizationFilter{}, page(3, 100))
	s.NoError(err)
	s.Empty(empty)
}

// ============================================================================
// Associations
// ============================================================================

func (s *StoreSuite) TestAssignActivities_IsIdempotent() {
	repo := s.store.Organizations()
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	food := s.fx.Activity("Food", nil)
	cars := s.fx.Activity("Cars", nil)
	org := s.fx.Organization("Horns and hooves", b)

	s.Require().NoError(repo.AssignActivities(s.ctx, org.ID, []uuid.UUID{food.ID, food.ID, cars.ID}))
	s.Require().NoError(repo.AssignActivities(s.ctx, org.ID, []uuid.UUID{food.ID}))

	links, err := repo.ActivitiesOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Len(links[org.ID], 2)

	s.Require().NoError(repo.UnassignActivities(s.ctx, org.ID, nil))
	s.Require().NoError(repo.UnassignActivities(s.ctx, org.ID, []uuid.UUID{uuid.New()}))
	s.Require().NoError(repo.UnassignActivities(s.ctx, org.ID, []uuid.UUID{food.ID}))

	links, err = repo.ActivitiesOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Require().Len(links[org.ID], 1)
	s.Equal(cars.ID, links[org.ID][0].ID)
}

func (s *StoreSuite) TestAssignPhoneNumbers() {
	repo := s.store.Organizations()
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	p1 := s.fx.PhoneNumber("+78005553535")
	p2 := s.fx.PhoneNumber("+78005553536")
	org := s.fx.Organization("Horns and hooves", b)

	s.Require().NoError(repo.AssignPhoneNumbers(s.ctx, org.ID, []uuid.UUID{p1.ID, p2.ID}))
	s.Require().NoError(repo.AssignPhoneNumbers(s.ctx, org.ID, []uuid.UUID{p2.ID}))

	phones, err := repo.PhoneNumbersOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Len(phones[org.ID], 2)

	_, err = s.store.PhoneNumbers().DeleteByID(s.ctx, p1.ID)
	s.Require().NoError(err)
	s.Require().NoError(repo.UnassignPhoneNumbers(s.ctx, org.ID, []uuid.UUID{p1.ID}))

	phones, err = repo.PhoneNumbersOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Require().Len(phones[org.ID], 1)
	s.Equal(p2.ID, phones[org.ID][0].ID)
}

func (s *StoreSuite) TestAssign_MissingReferenceIsConflict() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	food := s.fx.Activity("Food", nil)
	org := s.fx.Organization("Horns and hooves", b)
	repo := s.store.Organizations()

	err := repo.AssignActivities(s.ctx, org.ID, []uuid.UUID{food.ID, uuid.New()})
	s.Equal(apperrors.KindConflict, apperrors.KindOf(err))

	err = repo.AssignPhoneNumbers(s.ctx, org.ID, []uuid.UUID{uuid.New()})
	s.Equal(apperrors.KindConflict, apperrors.KindOf(err))

	err = repo.AssignActivities(s.ctx, uuid.New(), []uuid.UUID{food.ID})
	s.Equal(apperrors.KindConflict, apperrors.KindOf(err))

	ghost := domain.Organization{Name: "Ghost", BuildingID: uuid.New()}
	err = repo.Create(s.ctx, &ghost)
	s.Equal(apperrors.KindConflict, apperrors.KindOf(err))

	activities, err := repo.ActivitiesOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Empty(activities[org.ID])
}

func (s *StoreSuite) TestDeleteOrganization_RemovesLinksOnly() {
	repo := s.store.Organizations()
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	food := s.fx.Activity("Food", nil)
	org := s.fx.Organization("Horns and hooves", b, food)

	ok, err := repo.DeleteByID(s.ctx, org.ID)
	s.Require().NoError(err)
	s.True(ok)

	links, err := repo.ActivitiesOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Empty(links[org.ID])

	a, err := s.store.Activities().GetByID(s.ctx, food.ID)
	s.NoError(err)
	s.NotNil(a)

	building, err := s.store.Buildings().GetByID(s.ctx, b.ID)
	s.NoError(err)
	s.NotNil(building)
}

func (s *StoreSuite) TestDeleteActivity_RemovesLinks() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)
	food := s.fx.Activity("Food", nil)
	org := s.fx.Organization("Horns and hooves", b, food)

	_, err := s.store.Activities().DeleteByID(s.ctx, food.ID)
	s.Require().NoError(err)

	links, err := s.store.Organizations().ActivitiesOf(s.ctx, []uuid.UUID{org.ID})
	s.Require().NoError(err)
	s.Empty(links[org.ID])
}

// ============================================================================
// Unit of work
// ============================================================================

func (s *StoreSuite) TestDo_CommitsOnSuccess() {
	var id uuid.UUID
	err := s.store.Do(s.ctx, func(ctx context.Context) error {
		b := domain.Building{Address: "Lenin str. 3", Latitude: 55.7558, Longitude: 37.6176}
		if err := s.store.Buildings().Create(ctx, &b); err != nil {
			return err
		}
		id = b.ID
		return nil
	})
	s.Require().NoError(err)

	got, err := s.store.Buildings().GetByID(s.ctx, id)
	s.NoError(err)
	s.NotNil(got)
}

func (s *StoreSuite) TestDo_RollsBackOnError() {
	boom := errors.New("boom")
	var id uuid.UUID

	err := s.store.Do(s.ctx, func(ctx context.Context) error {
		b := domain.Building{Address: "Lenin str. 3", Latitude: 55.7558, Longitude: 37.6176}
		if err := s.store.Buildings().Create(ctx, &b); err != nil {
			return err
		}
		id = b.ID
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.store.Buildings().GetByID(s.ctx, id)
	s.NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestDo_RollsBackOnPanic() {
	var id uuid.UUID

	s.Panics(func() {
		_ = s.store.Do(s.ctx, func(ctx context.Context) error {
			b := domain.Building{Address: "Lenin str. 3", Latitude: 55.7558, Longitude: 37.6176}
			if err := s.store.Buildings().Create(ctx, &b); err != nil {
				return err
			}
			id = b.ID
			panic("boom")
		})
	})

	got, err := s.store.Buildings().GetByID(s.ctx, id)
	s.NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestDo_RollsBackOnCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	var id uuid.UUID

	err := s.store.Do(ctx, func(ctx context.Context) error {
		b := domain.Building{Address: "Lenin str. 3", Latitude: 55.7558, Longitude: 37.6176}
		if err := s.store.Buildings().Create(ctx, &b); err != nil {
			return err
		}
		id = b.ID
		cancel()
		return nil
	})
	s.ErrorIs(err, context.Canceled)

	got, err := s.store.Buildings().GetByID(s.ctx, id)
	s.NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestDo_NestedScopeJoinsOuter() {
	boom := errors.New("boom")
	var outerID, innerID uuid.UUID

	err := s.store.Do(s.ctx, func(ctx context.Context) error {
		outer := domain.Building{Address: "Outer", Latitude: 1, Longitude: 1}
		if err := s.store.Buildings().Create(ctx, &outer); err != nil {
			return err
		}
		outerID = outer.ID

		if err := s.store.Do(ctx, func(ctx context.Context) error {
			inner := domain.Building{Address: "Inner", Latitude: 2, Longitude: 2}
			if err := s.store.Buildings().Create(ctx, &inner); err != nil {
				return err
			}
			innerID = inner.ID
			return nil
		}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	for _, id := range []uuid.UUID{outerID, innerID} {
		got, err := s.store.Buildings().GetByID(s.ctx, id)
		s.NoError(err)
		s.Nil(got)
	}
}

func (s *StoreSuite) TestView_SeesCommittedData() {
	b := s.fx.Building("Lenin str. 3", 55.7558, 37.6176)

	err := s.store.View(s.ctx, func(ctx context.Context) error {
		got, err := s.store.Buildings().GetByID(ctx, b.ID)
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal(b.Address, got.Address)
		return nil
	})
	s.NoError(err)
}
