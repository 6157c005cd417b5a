package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/pkg/errors"
)

type organizationRepository struct {
	s            *Store
	earthRadiusM float64
}

func storedOrganization(o domain.Organization) domain.Organization {
	return domain.Organization{ID: o.ID, Name: o.Name, BuildingID: o.BuildingID}
}

func (st *state) deleteOrganization(id uuid.UUID) {
	delete(st.organizations, id)
	delete(st.orgActivities, id)
	delete(st.orgPhones, id)
}

// matches evaluates every set condition of the filter against one organization.
func (r *organizationRepository) matches(st *state, o domain.Organization, f domain.OrganizationFilter, name string, eligible idSet) bool {
	if f.Name != nil && !strings.Contains(strings.ToLower(o.Name), name) {
		return false
	}
	if f.BuildingID != nil && o.BuildingID != *f.BuildingID {
		return false
	}
	if eligible != nil {
		linked := false
		for activityID := range st.orgActivities[o.ID] {
			if _, ok := eligible[activityID]; ok {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	if f.Geo != nil {
		b, ok := st.buildings[o.BuildingID]
		if !ok || !f.Geo.Contains(b.Point(), r.earthRadiusM) {
			return false
		}
	}
	return true
}

func (r *organizationRepository) Search(
	ctx context.Context,
	filter domain.OrganizationFilter,
	page domain.Pagination,
) ([]domain.Organization, error) {
	var name string
	if filter.Name != nil {
		name = strings.ToLower(*filter.Name)
	}

	var eligible idSet
	if len(filter.ActivityIDs) > 0 {
		eligible = make(idSet, len(filter.ActivityIDs))
		for _, id := range filter.ActivityIDs {
			eligible[id] = struct{}{}
		}
	}

	var out []domain.Organization
	r.s.read(ctx, func(st *state) {
		matched := make([]domain.Organization, 0)
		for _, o := range st.organizations {
			if r.matches(st, o, filter, name, eligible) {
				matched = append(matched, storedOrganization(o))
			}
		}
		sortByID(matched, organizationID)
		out = paginate(matched, page)
	})
	return out, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var out *domain.Organization
	r.s.read(ctx, func(st *state) {
		if o, ok := st.organizations[id]; ok {
			cp := storedOrganization(o)
			out = &cp
		}
	})
	return out, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.buildings[org.BuildingID]; !ok {
			return errors.ErrReferenceConflict
		}
		st.organizations[org.ID] = storedOrganization(*org)
		return nil
	})
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.organizations[org.ID]; !found {
			return nil
		}
		if _, ok := st.buildings[org.BuildingID]; !ok {
			return errors.ErrReferenceConflict
		}
		st.organizations[org.ID] = storedOrganization(*org)
		return nil
	})
	return found, err
}

func (r *organizationRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.organizations[id]; found {
			st.deleteOrganization(id)
		}
		return nil
	})
	return found, err
}

func (r *organizationRepository) ActivitiesOf(
	ctx context.Context,
	orgIDs []uuid.UUID,
) (map[uuid.UUID][]domain.Activity, error) {
	result := make(map[uuid.UUID][]domain.Activity, len(orgIDs))
	r.s.read(ctx, func(st *state) {
		for _, orgID := range orgIDs {
			links := st.orgActivities[orgID]
			if len(links) == 0 {
				continue
			}
			activities := make([]domain.Activity, 0, len(links))
			for id := range links {
				if a, ok := st.activities[id]; ok {
					activities = append(activities, storedActivity(a))
				}
			}
			sortByID(activities, activityID)
			result[orgID] = activities
		}
	})
	return result, nil
}

func (r *organizationRepository) PhoneNumbersOf(
	ctx context.Context,
	orgIDs []uuid.UUID,
) (map[uuid.UUID][]domain.PhoneNumber, error) {
	result := make(map[uuid.UUID][]domain.PhoneNumber, len(orgIDs))
	r.s.read(ctx, func(st *state) {
		for _, orgID := range orgIDs {
			links := st.orgPhones[orgID]
			if len(links) == 0 {
				continue
			}
			phones := make([]domain.PhoneNumber, 0, len(links))
			for id := range links {
				if p, ok := st.phoneNumbers[id]; ok {
					phones = append(phones, p)
				}
			}
			sortByID(phones, phoneNumberID)
			result[orgID] = phones
		}
	})
	return result, nil
}

// hasAll reports whether every id is a key of m.
func hasAll[T any](m map[uuid.UUID]T, ids []uuid.UUID) bool {
	for _, id := range ids {
		if _, ok := m[id]; !ok {
			return false
		}
	}
	return true
}

func link(links map[uuid.UUID]idSet, owner uuid.UUID, ids []uuid.UUID) {
	set, ok := links[owner]
	if !ok {
		set = make(idSet, len(ids))
		links[owner] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

func unlinkFrom(links map[uuid.UUID]idSet, owner uuid.UUID, ids []uuid.UUID) {
	set, ok := links[owner]
	if !ok {
		return
	}
	for _, id := range ids {
		delete(set, id)
	}
}

func (r *organizationRepository) AssignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	if len(activityIDs) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.organizations[orgID]; !ok || !hasAll(st.activities, activityIDs) {
			return errors.ErrReferenceConflict
		}
		link(st.orgActivities, orgID, activityIDs)
		return nil
	})
}

func (r *organizationRepository) UnassignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	if len(activityIDs) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		unlinkFrom(st.orgActivities, orgID, activityIDs)
		return nil
	})
}

func (r *organizationRepository) AssignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	if len(phoneIDs) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.organizations[orgID]; !ok || !hasAll(st.phoneNumbers, phoneIDs) {
			return errors.ErrReferenceConflict
		}
		link(st.orgPhones, orgID, phoneIDs)
		return nil
	})
}

func (r *organizationRepository) UnassignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	if len(phoneIDs) == 0 {
		return nil
	}
	return r.s.write(ctx, func(st *state) error {
		unlinkFrom(st.orgPhones, orgID, phoneIDs)
		return nil
	})
}
